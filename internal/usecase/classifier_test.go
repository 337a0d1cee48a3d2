package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accessmap-service/internal/domain"
)

func ptr(v float64) *float64 { return &v }

func TestClassifier_Classify(t *testing.T) {
	var classifier Classifier

	t.Run("wheelchair tag yields single attribute and summary", func(t *testing.T) {
		place := classifier.Classify(domain.OSMElement{
			Type: "node", ID: 1,
			Lat: ptr(28.61), Lon: ptr(77.21),
			Tags: map[string]string{"wheelchair": "yes"},
		})
		require.NotNil(t, place)
		assert.Equal(t, "node_1", place.ID)
		assert.Equal(t, []domain.AccessibilityAttribute{domain.AttrWheelchair}, place.AccessibilityType)
		assert.Equal(t, "Wheelchair accessible", place.Summary)
	})

	t.Run("accessible toilets fire both wheelchair and toilet rules", func(t *testing.T) {
		place := classifier.Classify(domain.OSMElement{
			Type: "node", ID: 2,
			Lat: ptr(28.61), Lon: ptr(77.21),
			Tags: map[string]string{"amenity": "toilets", "wheelchair": "yes"},
		})
		require.NotNil(t, place)
		assert.Equal(t, []domain.AccessibilityAttribute{domain.AttrWheelchair, domain.AttrToilet}, place.AccessibilityType)
		assert.Equal(t, "Wheelchair accessible, Accessible toilets", place.Summary)
	})

	t.Run("toilets without wheelchair do not get the toilet attribute", func(t *testing.T) {
		place := classifier.Classify(domain.OSMElement{
			Type: "node", ID: 3,
			Lat: ptr(1), Lon: ptr(2),
			Tags: map[string]string{"amenity": "toilets"},
		})
		require.NotNil(t, place)
		assert.False(t, place.HasAttribute(domain.AttrToilet))
		// фраза в описании всё равно есть: она строится по тегу amenity
		assert.Contains(t, place.Summary, "Accessible toilets")
	})

	t.Run("elevator and tactile", func(t *testing.T) {
		place := classifier.Classify(domain.OSMElement{
			Type: "node", ID: 4,
			Lat: ptr(1), Lon: ptr(2),
			Tags: map[string]string{"highway": "elevator", "tactile_paving": "yes"},
		})
		require.NotNil(t, place)
		assert.True(t, place.HasAttribute(domain.AttrElevator))
		assert.True(t, place.HasAttribute(domain.AttrTactile))
		assert.Equal(t, "Elevator available, Tactile paving", place.Summary)
	})

	t.Run("braille via tag and via description substring", func(t *testing.T) {
		byTag := classifier.Classify(domain.OSMElement{
			Type: "node", ID: 5,
			Lat: ptr(1), Lon: ptr(2),
			Tags: map[string]string{"braille": "yes"},
		})
		require.NotNil(t, byTag)
		assert.True(t, byTag.HasAttribute(domain.AttrBraille))
		assert.Equal(t, "Braille signage", byTag.Summary)

		byDescription := classifier.Classify(domain.OSMElement{
			Type: "node", ID: 6,
			Lat: ptr(1), Lon: ptr(2),
			Tags: map[string]string{"description": "Signs with BRAILLE lettering"},
		})
		require.NotNil(t, byDescription)
		assert.True(t, byDescription.HasAttribute(domain.AttrBraille))
	})

	t.Run("elderly from bench shelter or covered", func(t *testing.T) {
		for _, tag := range []string{"bench", "shelter", "covered"} {
			place := classifier.Classify(domain.OSMElement{
				Type: "node", ID: 7,
				Lat: ptr(1), Lon: ptr(2),
				Tags: map[string]string{tag: "yes"},
			})
			require.NotNil(t, place)
			assert.True(t, place.HasAttribute(domain.AttrElderly), "tag %s", tag)
		}
	})

	t.Run("no matching tags fall back to wheelchair", func(t *testing.T) {
		place := classifier.Classify(domain.OSMElement{
			Type: "node", ID: 8,
			Lat: ptr(1), Lon: ptr(2),
			Tags: map[string]string{"tourism": "museum"},
		})
		require.NotNil(t, place)
		assert.Equal(t, []domain.AccessibilityAttribute{domain.AttrWheelchair}, place.AccessibilityType)
		assert.Equal(t, "Accessibility features available", place.Summary)
	})

	t.Run("way without direct coordinates uses computed center", func(t *testing.T) {
		place := classifier.Classify(domain.OSMElement{
			Type: "way", ID: 9,
			Center: &domain.Point{Lat: 28.62, Lon: 77.22},
			Tags:   map[string]string{"wheelchair": "yes"},
		})
		require.NotNil(t, place)
		assert.Equal(t, "way_9", place.ID)
		assert.Equal(t, 28.62, place.Lat)
		assert.Equal(t, 77.22, place.Lng)
	})

	t.Run("element without any coordinates is dropped", func(t *testing.T) {
		place := classifier.Classify(domain.OSMElement{
			Type: "relation", ID: 10,
			Tags: map[string]string{"wheelchair": "yes"},
		})
		assert.Nil(t, place)
	})

	t.Run("name precedence name then amenity then highway", func(t *testing.T) {
		named := classifier.Classify(domain.OSMElement{
			Type: "node", ID: 11, Lat: ptr(1), Lon: ptr(2),
			Tags: map[string]string{"name": "Central Park", "amenity": "toilets"},
		})
		assert.Equal(t, "Central Park", named.Name)

		byAmenity := classifier.Classify(domain.OSMElement{
			Type: "node", ID: 12, Lat: ptr(1), Lon: ptr(2),
			Tags: map[string]string{"amenity": "toilets", "highway": "elevator"},
		})
		assert.Equal(t, "toilets", byAmenity.Name)

		byHighway := classifier.Classify(domain.OSMElement{
			Type: "node", ID: 13, Lat: ptr(1), Lon: ptr(2),
			Tags: map[string]string{"highway": "elevator"},
		})
		assert.Equal(t, "elevator", byHighway.Name)

		unnamed := classifier.Classify(domain.OSMElement{
			Type: "node", ID: 14, Lat: ptr(1), Lon: ptr(2),
		})
		assert.Equal(t, "Unnamed Location", unnamed.Name)
	})

	t.Run("classification is idempotent", func(t *testing.T) {
		el := domain.OSMElement{
			Type: "node", ID: 15,
			Lat: ptr(28.61), Lon: ptr(77.21),
			Tags: map[string]string{"wheelchair": "yes", "amenity": "toilets", "braille": "yes"},
		}

		first := classifier.Classify(el)
		second := classifier.Classify(el)
		require.NotNil(t, first)
		require.NotNil(t, second)
		assert.Equal(t, first, second)
	})
}
