package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"showcase/internal/errs"
)

func TestVariantApply(t *testing.T) {
	assert.Equal(t, "InfiniteRoads", Original.Apply("InfiniteRoads"))
	assert.Equal(t, "infiniteroads", Lower.Apply("InfiniteRoads"))
	assert.Equal(t, "infiniteRoads", LowerFirst.Apply("InfiniteRoads"))
	assert.Equal(t, "Infiniteroads", Title.Apply("InfiniteRoads"))
	assert.Equal(t, "", Title.Apply(""))
	assert.Equal(t, "Élan", Title.Apply("éLAN"))
}

func TestVariantsDeduplicates(t *testing.T) {
	s, err := New(Options{})
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"InfiniteRoads", "infiniteroads", "infiniteRoads", "Infiniteroads"},
		s.Variants("InfiniteRoads"))

	// "skyline" is identical under original, lower and lower-first.
	assert.Equal(t, []string{"skyline", "Skyline"}, s.Variants("skyline"))
}

func TestDefaultURL(t *testing.T) {
	s, err := New(Options{})
	require.NoError(t, err)

	u, err := s.URL("InfiniteRoads", 3, ".jpg")
	require.NoError(t, err)
	assert.Equal(t, "/images/InfiniteRoadsShot03.jpg", u)
}

func TestBaseAndPadding(t *testing.T) {
	s, err := New(Options{
		Base:     "https://cdn.example.com/site/",
		Template: "{{.Base}}/shots/{{.Name}}-{{.Index}}{{.Ext}}",
		PadWidth: 3,
	})
	require.NoError(t, err)

	u, err := s.URL("demo", 7, ".png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/site/shots/demo-007.png", u)

	assert.Equal(t, "1234", s.Index(1234))
}

func TestCandidatesOrder(t *testing.T) {
	s, err := New(Options{Variants: []Variant{Original, Lower}})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/images/AbcShot01.jpg",
		"/images/AbcShot01.png",
		"/images/AbcShot01.jpeg",
		"/images/abcShot01.jpg",
		"/images/abcShot01.png",
		"/images/abcShot01.jpeg",
	}, s.Candidates("Abc", 1))
}

func TestInvalidTemplate(t *testing.T) {
	_, err := New(Options{Template: "{{.Base"})
	require.ErrorIs(t, err, errs.ErrInvalidTemplate)

	_, err = New(Options{Template: "{{.Nope}}"})
	require.ErrorIs(t, err, errs.ErrInvalidTemplate)

	_, err = New(Options{PadWidth: -1})
	require.ErrorIs(t, err, errs.ErrInvalidTemplate)
}

func TestParseVariant(t *testing.T) {
	v, err := ParseVariant("lower-first")
	require.NoError(t, err)
	assert.Equal(t, LowerFirst, v)

	_, err = ParseVariant("upper")
	assert.Error(t, err)
}
