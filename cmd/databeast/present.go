package main

import (
	"github.com/l1jgo/databeast/internal/core/event"
	"go.uber.org/zap"
)

// present is the headless presentation layer: every encounter event ends
// up as a log line. Per-hit noise stays at debug.
func present(bus *event.Bus, log *zap.Logger) {
	log = log.Named("present")

	event.Subscribe(bus, func(e event.EnemySpawned) {
		log.Info("enemy spawned",
			zap.String("name", e.Name),
			zap.Int("creature", e.CreatureID),
			zap.Int("level", e.Level),
			zap.Int("corruption", e.Corruption),
			zap.Bool("boss", e.Boss))
	})
	event.Subscribe(bus, func(e event.DamageDealt) {
		log.Debug("damage",
			zap.Stringer("target", e.Target),
			zap.Float64("amount", e.Amount),
			zap.String("type", e.Type),
			zap.Bool("crit", e.Crit),
			zap.String("by", e.Label),
			zap.Float64("hp", e.HP))
	})
	event.Subscribe(bus, func(e event.StatusApplied) {
		log.Debug("status", zap.Stringer("target", e.Target), zap.String("kind", e.Kind), zap.Float64("duration", e.Duration))
	})
	event.Subscribe(bus, func(e event.EntityDied) {
		if e.Player {
			log.Warn("player down")
		}
	})
	event.Subscribe(bus, func(e event.TelegraphStarted) {
		log.Info("incoming attack", zap.String("attack", e.Attack), zap.String("range", e.Range), zap.Int64("ms", e.DelayMs))
	})
	event.Subscribe(bus, func(e event.BossIncoming) {
		log.Warn(e.Message, zap.Int("stage", e.Stage), zap.Int64("in_ms", e.DelayMs))
	})
	event.Subscribe(bus, func(e event.BossPhaseAdvanced) {
		log.Warn(e.Dialogue, zap.Int("phase", e.Phase), zap.String("behavior", e.Behavior), zap.String("environment", e.Environment))
	})
	event.Subscribe(bus, func(e event.StageComplete) {
		log.Info("stage complete", zap.Int("stage", e.Stage), zap.Int("next", e.NextStage), zap.String("boss", e.Boss))
	})
	event.Subscribe(bus, func(e event.RewardGranted) {
		log.Debug("reward", zap.Int("xp", e.XP), zap.Int("gold", e.Gold), zap.Any("items", e.Items))
	})
	event.Subscribe(bus, func(e event.LevelUp) {
		log.Info("level up", zap.Int("level", e.Level))
	})
	event.Subscribe(bus, func(e event.AbilityUsed) {
		log.Debug("ability", zap.String("slot", e.Slot), zap.String("name", e.Name))
	})
	event.Subscribe(bus, func(e event.AbilityRejected) {
		log.Debug("ability rejected", zap.String("slot", e.Slot), zap.String("reason", e.Reason))
	})
	event.Subscribe(bus, func(e event.Notification) {
		log.Info(e.Message)
	})
	event.Subscribe(bus, func(e event.Paused) {
		log.Info("pause", zap.Bool("paused", e.Paused))
	})
	event.Subscribe(bus, func(e event.EncounterOver) {
		log.Info("encounter over", zap.Bool("victory", e.Victory), zap.Int("stage", e.Stage), zap.Int("score", e.Score))
	})
}
