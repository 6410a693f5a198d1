package simulator

import "log"

// WeatherParams mirrors the simulator's weather parameter set.
type WeatherParams struct {
	Cloudiness            float64 `json:"cloudiness"`
	Precipitation         float64 `json:"precipitation"`
	PrecipitationDeposits float64 `json:"precipitation_deposits"`
	WindIntensity         float64 `json:"wind_intensity"`
	SunAzimuthAngle       float64 `json:"sun_azimuth_angle"`
	SunAltitudeAngle      float64 `json:"sun_altitude_angle"`
	FogDensity            float64 `json:"fog_density"`
	Wetness               float64 `json:"wetness"`
}

// DefaultWeather is the preset used when a requested name is unknown.
const DefaultWeather = "ClearNoon"

var weatherPresets = map[string]WeatherParams{
	"ClearNoon": {
		Cloudiness:       15,
		WindIntensity:    0.35,
		SunAltitudeAngle: 75,
	},
	"CloudyNoon": {
		Cloudiness:       80,
		WindIntensity:    0.35,
		SunAltitudeAngle: 75,
	},
	"WetNoon": {
		Cloudiness:            20,
		PrecipitationDeposits: 50,
		WindIntensity:         0.35,
		SunAltitudeAngle:      75,
		Wetness:               50,
	},
	"MidRainNoon": {
		Cloudiness:            80,
		Precipitation:         30,
		PrecipitationDeposits: 50,
		WindIntensity:         0.4,
		SunAltitudeAngle:      70,
		Wetness:               40,
	},
	"HardRainNoon": {
		Cloudiness:            90,
		Precipitation:         60,
		PrecipitationDeposits: 100,
		WindIntensity:         1,
		SunAltitudeAngle:      75,
		Wetness:               100,
	},
	"ClearSunset": {
		Cloudiness:       15,
		WindIntensity:    0.35,
		SunAltitudeAngle: 15,
	},
	"WetSunset": {
		Cloudiness:            20,
		PrecipitationDeposits: 50,
		WindIntensity:         0.35,
		SunAltitudeAngle:      15,
		Wetness:               50,
	},
}

// PresetByName looks up a weather preset. Unknown names return the
// ClearNoon parameters and ok=false.
func PresetByName(name string) (WeatherParams, bool) {
	if p, ok := weatherPresets[name]; ok {
		return p, true
	}
	return weatherPresets[DefaultWeather], false
}

// WeatherPreset resolves a preset name, logging a warning and falling back
// to ClearNoon when the name is unknown. The lookup never fails.
func WeatherPreset(name string) WeatherParams {
	p, ok := PresetByName(name)
	if !ok {
		log.Printf("[Simulator] unknown weather preset %q, using %s", name, DefaultWeather)
	}
	return p
}

// WeatherPresetNames lists the known preset names.
func WeatherPresetNames() []string {
	names := make([]string, 0, len(weatherPresets))
	for n := range weatherPresets {
		names = append(names, n)
	}
	return names
}
