package weatherapi

import (
	"tn-weather/datasource"
	"tn-weather/models"
)

// conditionIcons maps WeatherAPI.com condition codes to icon keys.
// See https://www.weatherapi.com/docs/weather_conditions.json
var conditionIcons = map[int]string{
	1000: models.IconSunny,
	1003: models.IconPartlyCloudy,
	1006: models.IconCloudy,
	1009: models.IconCloudy,
	1030: models.IconFog,
	1135: models.IconFog,
	1147: models.IconFog,

	1063: models.IconLightRain,
	1150: models.IconLightRain,
	1153: models.IconLightRain,
	1180: models.IconLightRain,
	1183: models.IconLightRain,
	1240: models.IconLightRain,
	1186: models.IconRain,
	1189: models.IconRain,
	1192: models.IconRain,
	1195: models.IconRain,
	1243: models.IconRain,
	1246: models.IconRain,

	1087: models.IconThunderstorms,
	1273: models.IconThunderstorms,
	1276: models.IconThunderstorms,
	1279: models.IconThunderstorms,
	1282: models.IconThunderstorms,

	1066: models.IconSnow,
	1114: models.IconSnow,
	1117: models.IconSnow,
	1210: models.IconSnow,
	1213: models.IconSnow,
	1216: models.IconSnow,
	1219: models.IconSnow,
	1222: models.IconSnow,
	1225: models.IconSnow,
	1255: models.IconSnow,
	1258: models.IconSnow,
}

// IconForCode picks the icon for a condition code, falling back to the
// description when the code is unknown.
func IconForCode(code int, text string) string {
	if icon, ok := conditionIcons[code]; ok {
		return icon
	}
	return datasource.MapIcon(text)
}
