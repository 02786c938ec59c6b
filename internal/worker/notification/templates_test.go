package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odc-estimate/internal/domain"
)

func TestRenderEnquiryEmail(t *testing.T) {
	lat, lng, volume := 13.0827, 80.2707, 108.0

	t.Run("structured places", func(t *testing.T) {
		email, err := RenderEnquiryEmail(domain.EnquiryCreatedEvent{
			Enquiry: domain.Enquiry{
				StartLocation: "Chennai, Tamil Nadu, India",
				EndLocation:   "Mumbai",
				Email:         "buyer@example.com",
				Phone:         "12345",
				Length:        "12m",
			},
			From: &domain.PlaceSummary{
				Label:   "Chennai, Tamil Nadu, India",
				City:    "Chennai",
				State:   "Tamil Nadu",
				Country: "India",
				PlaceID: "ChIJ-chennai",
				Lat:     &lat,
				Lng:     &lng,
			},
			VolumeM3:   &volume,
			TruckClass: "ODC",
		})
		require.NoError(t, err)

		assert.Equal(t, "Enquiry for survey route: Chennai, Tamil Nadu, India → Mumbai", email.Subject)
		assert.Contains(t, email.HTML, "<strong>City/State:</strong> Chennai / Tamil Nadu")
		assert.Contains(t, email.HTML, "<strong>Coords:</strong> 13.0827, 80.2707")
		assert.Contains(t, email.HTML, "<p>Mumbai</p>")
		assert.Contains(t, email.HTML, "Approx Volume:</strong> 108 m³")
		assert.Contains(t, email.HTML, "Truck Class:</strong> ODC")

		assert.Contains(t, email.Text, "City/State: Chennai / Tamil Nadu")
		assert.Contains(t, email.Text, "  Mumbai")
		assert.NotContains(t, email.Text, "<")
	})

	t.Run("missing admin fields render as dash", func(t *testing.T) {
		email, err := RenderEnquiryEmail(domain.EnquiryCreatedEvent{
			Enquiry: domain.Enquiry{StartLocation: "A", EndLocation: "B"},
			From:    &domain.PlaceSummary{Label: "A"},
		})
		require.NoError(t, err)
		assert.Contains(t, email.Text, "City/State: - / -")
		assert.Contains(t, email.Text, "Coords: -, -")
		assert.NotContains(t, email.HTML, "Approx Volume")
	})

	t.Run("html is escaped", func(t *testing.T) {
		email, err := RenderEnquiryEmail(domain.EnquiryCreatedEvent{
			Enquiry: domain.Enquiry{StartLocation: "<script>x</script>", EndLocation: "B"},
		})
		require.NoError(t, err)
		assert.NotContains(t, email.HTML, "<script>")
		assert.Contains(t, email.HTML, "&lt;script&gt;")
	})
}
