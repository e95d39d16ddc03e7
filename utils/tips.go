package utils

import "sync"

var roadSafetyTips = []string{
	"Keep at least a two second gap to the vehicle in front, double it in rain.",
	"Check your mirrors every five to eight seconds, not only before a manoeuvre.",
	"Slow down before the bend, not in it. Brake in a straight line.",
	"A pedestrian at a crossing always has priority. Ease off early.",
	"Dipped headlights on, day and night. Being seen is half of being safe.",
	"Never overtake near a crossing, a hilltop or an intersection.",
	"Fatigue behaves like alcohol. Stop every two hours on long drives.",
	"In fog, slow down and use fog lights. High beam only makes it worse.",
	"Adjust speed to conditions. The posted limit is a ceiling, not a target.",
	"Before changing lanes: mirror, signal, shoulder check, then move.",
}

var tipMu sync.RWMutex
var tipIndex int

// TipOfTheDay returns the currently rotated road safety tip.
func TipOfTheDay() string {
	tipMu.RLock()
	defer tipMu.RUnlock()
	return roadSafetyTips[tipIndex]
}

// RotateTip advances the tip rotation by one. Called by the scheduler
// once a day.
func RotateTip() {
	tipMu.Lock()
	defer tipMu.Unlock()
	tipIndex = (tipIndex + 1) % len(roadSafetyTips)
}

// AllTips returns a copy of the full tip list.
func AllTips() []string {
	out := make([]string, len(roadSafetyTips))
	copy(out, roadSafetyTips)
	return out
}
