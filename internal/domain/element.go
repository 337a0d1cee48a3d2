package domain

// OSMElement сырой элемент из Overpass API: node/way/relation с произвольным
// набором тегов. Поля координат опциональны, у way/relation вместо них center.
type OSMElement struct {
	Type   string            `json:"type"`
	ID     int64             `json:"id"`
	Lat    *float64          `json:"lat,omitempty"`
	Lon    *float64          `json:"lon,omitempty"`
	Center *Point            `json:"center,omitempty"`
	Tags   map[string]string `json:"tags,omitempty"`
}

// Tag возвращает значение тега или дефолт; схема тегов открытая,
// наличие ключей никогда не предполагается
func (e OSMElement) Tag(key, def string) string {
	if v, ok := e.Tags[key]; ok {
		return v
	}
	return def
}

// OverpassResponse ответ Overpass API
type OverpassResponse struct {
	Elements []OSMElement `json:"elements"`
}
