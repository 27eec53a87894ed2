package config

import (
	"github.com/knadh/koanf/providers/confmap"
)

func DefaultConfig() map[string]interface{} {
	return map[string]interface{}{
		"countdown": map[string]interface{}{
			"tick_interval": 1000,
			"expired_label": "time is up",
			"labels": map[string]interface{}{
				"days":    "days",
				"hours":   "hours",
				"minutes": "minutes",
				"seconds": "seconds",
			},
		},
		"ui": map[string]interface{}{
			"colored_output":  true,
			"mode":            "compact",
			"show_timestamps": true,
			"week_start":      "sunday",
		},
		// Demo deadlines; a config file replaces the whole list.
		"catalog": map[string]interface{}{
			"deadlines": []interface{}{
				map[string]interface{}{
					"id":    "next-exam",
					"title": "Operating Systems exam",
					"kind":  "exam",
					"in":    3,
					"at":    "09:00",
				},
				map[string]interface{}{
					"id":       "SE301",
					"title":    "Advanced Requirements Engineering",
					"code":     "SE301",
					"kind":     "exam",
					"location": "Building C - Hall 101",
					"due":      "2026-01-18 09:00",
				},
				map[string]interface{}{
					"id":    "project",
					"title": "Programming project submission",
					"kind":  "deadline",
					"due":   "2026-01-20 00:00",
				},
				map[string]interface{}{
					"id":       "CS310",
					"title":    "Artificial Intelligence",
					"code":     "CS310",
					"kind":     "exam",
					"location": "Main Exam Building",
					"due":      "2026-01-21 09:00",
				},
				map[string]interface{}{
					"id":    "extra-lecture",
					"title": "Extra lecture",
					"kind":  "class",
					"due":   "2026-01-22 00:00",
				},
				map[string]interface{}{
					"id":       "SE304",
					"title":    "Software Project Management",
					"code":     "SE304",
					"kind":     "exam",
					"location": "Building C - Hall 205",
					"due":      "2026-01-25 11:00",
				},
				map[string]interface{}{
					"id":       "CS305",
					"title":    "Advanced Operating Systems",
					"code":     "CS305",
					"kind":     "exam",
					"location": "Building B - Hall 110",
					"due":      "2026-01-28 09:00",
				},
			},
		},
	}
}

func NewDefaultProvider() *confmap.Confmap {
	return confmap.Provider(DefaultConfig(), ".")
}

func GetDefaultConfigPath() string {
	return "~/.countdown/config.yaml"
}
