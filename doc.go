// Package hdsprite substitutes low-resolution sprite textures with
// high-detail replacements at asset-load time and redirects draws to them
// at render time, for [Ebitengine] games and tools.
//
// A [Rule] targets one asset name and works in one of two modes, derived
// from its content:
//
//   - wholesale: a player-base sheet is replaced by a differently sized
//     high-detail image. [SpriteBatch] maps source rectangles and origins
//     onto it with the rule's [Geometry] scale.
//   - sparse: grid blocks of the original sheet are overwritten by override
//     images while the sheet keeps its size, so other code relying on the
//     original grid keeps working.
//
// A rule with neither kind of content matches but changes nothing.
//
// # Quick start
//
//	engine := hdsprite.NewEngine(hdsprite.EngineOptions{Cache: cache})
//	engine.Register(hdsprite.RuleConfig{
//		Target:      "Characters/Farmer/farmer_base",
//		Owner:       "example.pack",
//		PlayerBase:  true,
//		Replacement: hd,
//	})
//
//	// asset pipeline
//	tex := engine.Load(name, original)
//
//	// render pipeline
//	batch := hdsprite.NewSpriteBatch(engine.Redirector.Hook())
//	batch.Draw(hdsprite.DrawCall{Texture: tex, Dst: dst})
//	batch.Flush(screen)
//
// # Gating
//
// [Gate.IsActive] checks, in order, the rule's local flag, the owner's
// "Enabled" setting in [Settings], and the rule's conditions via a
// [ConditionBackend]. A missing setting or a backend that is not ready
// leaves the rule active.
//
// # Invalidation
//
// Loads are recomputed from scratch whenever the host reloads an asset.
// [Scheduler] asks the host's [AssetCache] to drop conditional targets at
// each day boundary and every target after [Settings.Save]. [DayClock] can
// drive day boundaries when the host has none; the ecs sub-package routes
// them through a Donburi world.
//
// Logging is silent by default; see [SetLogger].
//
// [Ebitengine]: https://ebitengine.org
package hdsprite
