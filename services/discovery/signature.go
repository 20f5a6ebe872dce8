package discovery

import (
	"strconv"
	"strings"

	"nearbuy/models"
)

// Signature is a deterministic fingerprint over every input that influences a
// fetch: filter criteria, search text, searcher location and listing-kind
// scope. Equal signatures mean no new fetch is issued; a changed signature
// invalidates any fetch in flight and resets the cursor.
type Signature string

// ComputeSignature builds the canonical fingerprint. Structurally equal
// inputs always produce equal signatures.
func ComputeSignature(c models.FilterCriteria, query string, location *models.Coordinates) Signature {
	var b strings.Builder

	b.WriteString("k=")
	b.WriteString(string(c.Kind))
	b.WriteString("|cat=")
	b.WriteString(c.CategoryID)
	b.WriteString("|pmin=")
	writeFloatPtr(&b, c.PriceMin)
	b.WriteString("|pmax=")
	writeFloatPtr(&b, c.PriceMax)
	b.WriteString("|rad=")
	writeFloatPtr(&b, c.RadiusMiles)
	b.WriteString("|minr=")
	writeFloatPtr(&b, c.MinRating)
	b.WriteString("|sort=")
	b.WriteString(string(c.Sort))
	b.WriteString("|ver=")
	b.WriteString(strconv.FormatBool(c.VerifiedOnly))
	b.WriteString("|img=")
	b.WriteString(strconv.FormatBool(c.WithImages))
	b.WriteString("|q=")
	b.WriteString(strings.TrimSpace(query))
	b.WriteString("|loc=")
	if location != nil {
		b.WriteString(strconv.FormatFloat(location.Lat, 'f', -1, 64))
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(location.Lon, 'f', -1, 64))
	}

	return Signature(b.String())
}

func writeFloatPtr(b *strings.Builder, v *float64) {
	if v == nil {
		return
	}
	b.WriteString(strconv.FormatFloat(*v, 'f', -1, 64))
}
