package main

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/phanxgames/hdsprite"
)

// loadRules reads a rule file and builds every rule in it.
func loadRules(path, contentDir string) ([]*hdsprite.Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}
	specs, err := hdsprite.LoadRuleSpecs(data)
	if err != nil {
		return nil, err
	}
	if contentDir == "" {
		contentDir = filepath.Dir(path)
	}
	load := hdsprite.DirImageLoader(contentDir)
	rules := make([]*hdsprite.Rule, 0, len(specs))
	for _, s := range specs {
		r, err := s.Build(load)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, nil
}

func checkCmd(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "check <rules.yaml>",
		Short: "Load a rule file and report every rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := loadRules(args[0], cfg.ContentDir)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, r := range rules {
				g := r.Geometry()
				fmt.Fprintf(out, "%-40s owner=%s mode=%s size=%dx%d origin=(%d,%d) scale=%dx%d conditions=%d\n",
					r.Target(), r.Owner(), r.Mode(), g.Width, g.Height, g.OriginX, g.OriginY, g.ScaleX, g.ScaleY,
					len(r.Conditions()))
			}
			fmt.Fprintf(out, "%d rules OK\n", len(rules))
			return nil
		},
	}
}

func previewCmd(cfg *config) *cobra.Command {
	var (
		asset    string
		input    string
		output   string
		disabled []string
		scale    bool
	)
	cmd := &cobra.Command{
		Use:   "preview <rules.yaml>",
		Short: "Run the substitution pipeline for one asset and write the drawn texture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := loadRules(args[0], cfg.ContentDir)
			if err != nil {
				return err
			}
			engine := hdsprite.NewEngine(hdsprite.EngineOptions{})
			for _, r := range rules {
				if err := engine.Add(r); err != nil {
					return err
				}
			}
			for _, owner := range disabled {
				engine.Settings.SetEnabled(owner, false)
			}

			original, err := hdsprite.LoadImageFile(input)
			if err != nil {
				return err
			}
			tex := engine.Load(asset, original)
			call := hdsprite.DrawCall{Texture: tex}
			engine.Redirect(&call)

			var result image.Image = call.Texture.Pixels()
			status := "original"
			if c := tex.Composite(); c != nil {
				status = "pass-through (" + c.Rule.Owner() + ")"
				if !c.PassThrough() {
					status = "redirected (" + c.Rule.Owner() + ")"
					if scale {
						result = c.Rule.Geometry().Preview(result)
					}
				}
			}
			if err := writePNG(output, result); err != nil {
				return err
			}
			b := result.Bounds()
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s, wrote %dx%d to %s\n", asset, status, b.Dx(), b.Dy(), output)
			return nil
		},
	}
	cmd.Flags().StringVar(&asset, "asset", "", "Asset name to load (required)")
	cmd.Flags().StringVar(&input, "input", "", "Original sprite sheet image (required)")
	cmd.Flags().StringVarP(&output, "out", "o", "preview.png", "Output PNG path")
	cmd.Flags().StringSliceVar(&disabled, "disable", nil, "Owners whose Enabled setting is false")
	cmd.Flags().BoolVar(&scale, "scale", false, "Upscale the produced texture by the rule's geometry")
	_ = cmd.MarkFlagRequired("asset")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %q: %w", path, err)
	}
	return f.Close()
}
