package config

var CategoryWeights = map[string]int{
	"🕯️ Information": 0,
	"📢 Utilities":    10,
	"🎲 Gameplay":     20,
	"🧹 Cleanup":      30,
	"⚙️ Settings":    40,
}
