package difficulty

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// DefaultLocale is the locale used by Label.
var DefaultLocale = language.BrazilianPortuguese

var supportedLocales = []language.Tag{
	language.BrazilianPortuguese,
	language.English,
}

var (
	labelCatalog = mustBuildCatalog()
	localeMatch  = language.NewMatcher(supportedLocales)
)

func mustBuildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.BrazilianPortuguese))
	messages := map[language.Tag]map[Tier]string{
		language.BrazilianPortuguese: {Low: "baixa", Medium: "média", High: "alta"},
		language.English:             {Low: "low", Medium: "medium", High: "high"},
	}
	for tag, labels := range messages {
		for tier, label := range labels {
			if err := b.SetString(tag, table[tier].key, label); err != nil {
				panic(err)
			}
		}
	}
	return b
}

// MatchLocale picks the best supported locale for the preferred tags.
func MatchLocale(preferred ...language.Tag) language.Tag {
	if len(preferred) == 0 {
		return DefaultLocale
	}
	_, index, _ := localeMatch.Match(preferred...)
	return supportedLocales[index]
}

// Label returns the display label of t in DefaultLocale.
func (t Tier) Label() string {
	return t.LabelIn(DefaultLocale)
}

// LabelIn returns the display label of t in the closest supported locale.
// Unknown tiers render as their machine name.
func (t Tier) LabelIn(tag language.Tag) string {
	e, ok := table[t]
	if !ok {
		return t.String()
	}
	p := message.NewPrinter(MatchLocale(tag), message.Catalog(labelCatalog))
	return p.Sprintf(e.key)
}
