package difficulty

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestWeights(t *testing.T) {
	tests := []struct {
		tier   Tier
		weight int
	}{
		{Low, 1},
		{Medium, 4},
		{High, 12},
		{Tier(0), 0},
		{Tier(4), 0},
		{Tier(-1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.tier.String(), func(t *testing.T) {
			assert.Equal(t, tt.weight, tt.tier.Weight())
		})
	}
}

func TestAll_DeclarationOrder(t *testing.T) {
	assert.Equal(t, []Tier{Low, Medium, High}, All())

	// callers get their own copy
	tiers := All()
	tiers[0] = High
	assert.Equal(t, Low, All()[0])
}

func TestWeights_MonotonicBySeverity(t *testing.T) {
	tiers := All()
	for i := 1; i < len(tiers); i++ {
		assert.Greater(t, tiers[i].Weight(), tiers[i-1].Weight())
	}
}

func TestStoredValues(t *testing.T) {
	assert.Equal(t, 1, int(Low))
	assert.Equal(t, 2, int(Medium))
	assert.Equal(t, 3, int(High))
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "baixa", Low.Label())
	assert.Equal(t, "média", Medium.Label())
	assert.Equal(t, "alta", High.Label())
	assert.Equal(t, "unknown", Tier(9).Label())
}

func TestLabelIn(t *testing.T) {
	tests := []struct {
		name string
		tag  language.Tag
		tier Tier
		want string
	}{
		{"english", language.English, High, "high"},
		{"american english", language.AmericanEnglish, Medium, "medium"},
		{"brazilian portuguese", language.BrazilianPortuguese, Low, "baixa"},
		{"unsupported falls back to default", language.Japanese, Medium, "média"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tier.LabelIn(tt.tag))
		})
	}
}

func TestMatchLocale(t *testing.T) {
	assert.Equal(t, DefaultLocale, MatchLocale())
	assert.Equal(t, language.English, MatchLocale(language.BritishEnglish))
	assert.Equal(t, language.BrazilianPortuguese, MatchLocale(language.Japanese))
}

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    Tier
		wantErr bool
	}{
		{"low", Low, false},
		{"Medium", Medium, false},
		{" HIGH ", High, false},
		{"1", Low, false},
		{"3", High, false},
		{"4", 0, true},
		{"0", 0, true},
		{"extreme", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTier_JSON(t *testing.T) {
	data, err := json.Marshal(High)
	require.NoError(t, err)
	assert.Equal(t, "3", string(data))

	var tier Tier
	require.NoError(t, json.Unmarshal([]byte(`2`), &tier))
	assert.Equal(t, Medium, tier)

	require.NoError(t, json.Unmarshal([]byte(`"high"`), &tier))
	assert.Equal(t, High, tier)

	// out-of-range numbers are left for validation to reject
	require.NoError(t, json.Unmarshal([]byte(`7`), &tier))
	assert.False(t, tier.Valid())

	tier = High
	require.NoError(t, json.Unmarshal([]byte(`"extreme"`), &tier))
	assert.False(t, tier.Valid())

	assert.Error(t, json.Unmarshal([]byte(`true`), &tier))
}

func TestEffortCaseSQL(t *testing.T) {
	assert.Equal(t,
		"CASE difficulty WHEN 1 THEN 1 WHEN 2 THEN 4 WHEN 3 THEN 12 ELSE 0 END",
		EffortCaseSQL("difficulty"),
	)
	assert.Equal(t,
		"CASE t.difficulty WHEN 1 THEN 1 WHEN 2 THEN 4 WHEN 3 THEN 12 ELSE 0 END",
		EffortCaseSQL("t.difficulty"),
	)
}
