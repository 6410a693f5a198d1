package simulator

import "testing"

func TestPresetByName_Known(t *testing.T) {
	cases := []struct {
		name          string
		cloudiness    float64
		precipitation float64
	}{
		{"ClearNoon", 15, 0},
		{"CloudyNoon", 80, 0},
		{"MidRainNoon", 80, 30},
		{"HardRainNoon", 90, 60},
	}
	for _, c := range cases {
		p, ok := PresetByName(c.name)
		if !ok {
			t.Errorf("PresetByName(%q) reported unknown", c.name)
		}
		if p.Cloudiness != c.cloudiness || p.Precipitation != c.precipitation {
			t.Errorf("PresetByName(%q) = cloudiness %.0f precipitation %.0f, want %.0f/%.0f",
				c.name, p.Cloudiness, p.Precipitation, c.cloudiness, c.precipitation)
		}
	}
}

func TestPresetByName_UnknownFallsBackToDefault(t *testing.T) {
	def, _ := PresetByName(DefaultWeather)
	for _, name := range []string{"", "clearnoon", "Blizzard", "ClearNoon "} {
		p, ok := PresetByName(name)
		if ok {
			t.Errorf("PresetByName(%q) reported known", name)
		}
		if p != def {
			t.Errorf("PresetByName(%q) = %+v, want default %+v", name, p, def)
		}
	}
}

func TestWeatherPreset_Total(t *testing.T) {
	// Every input resolves to some parameter set, never a zero-value panic.
	for _, name := range append(WeatherPresetNames(), "no-such-preset") {
		p := WeatherPreset(name)
		if p.SunAltitudeAngle == 0 {
			t.Errorf("WeatherPreset(%q) returned empty parameters", name)
		}
	}
}
