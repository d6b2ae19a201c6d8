package geo

import "math"

// earthRadiusKm - радиус Земли в километрах
const earthRadiusKm = 6371.0

// DistanceKm вычисляет расстояние по дуге большого круга между двумя точками
// по формуле гаверсинусов. Координаты в градусах, результат в километрах.
// Валидность координат не проверяется - вызывающий обязан проверить их наличие.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// ValidCoordinates проверяет, что широта и долгота в допустимых диапазонах
func ValidCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
