package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grammeal/prefsync/internal/domain/entity"
)

func themeConfig() entity.EngineConfig[entity.Theme] {
	return entity.EngineConfig[entity.Theme]{
		Kind:     entity.KindTheme,
		Priority: entity.DefaultPriority(),
		Default:  entity.ThemeLight,
	}
}

func TestResolveThemePriority(t *testing.T) {
	dom := entity.NewThemeDomain()
	now := time.Now()

	tests := []struct {
		name       string
		candidates []entity.Candidate[entity.Theme]
		wantValue  entity.Theme
		wantSource entity.Source
		wantConf   entity.Confidence
	}{
		{
			name: "host beats system",
			candidates: []entity.Candidate[entity.Theme]{
				entity.Present(entity.SourceHostApp, entity.ThemeDark, entity.ConfidenceHigh),
				entity.Present(entity.SourceSystem, entity.ThemeLight, entity.ConfidenceHigh),
			},
			wantValue:  entity.ThemeDark,
			wantSource: entity.SourceHostApp,
			wantConf:   entity.ConfidenceHigh,
		},
		{
			name: "manual beats everything",
			candidates: []entity.Candidate[entity.Theme]{
				entity.Present(entity.SourceManual, entity.ThemeLight, entity.ConfidenceHigh),
				entity.Present(entity.SourceHostApp, entity.ThemeDark, entity.ConfidenceHigh),
			},
			wantValue:  entity.ThemeLight,
			wantSource: entity.SourceManual,
			wantConf:   entity.ConfidenceHigh,
		},
		{
			name: "absent host falls through to persisted",
			candidates: []entity.Candidate[entity.Theme]{
				entity.Absent[entity.Theme](entity.SourceHostApp),
				entity.Present(entity.SourcePersisted, entity.ThemeDark, entity.ConfidenceMedium),
			},
			wantValue:  entity.ThemeDark,
			wantSource: entity.SourcePersisted,
			wantConf:   entity.ConfidenceMedium,
		},
		{
			name: "invalid candidate discarded whole",
			candidates: []entity.Candidate[entity.Theme]{
				entity.Present(entity.SourceHostApp, entity.Theme("blurple"), entity.ConfidenceHigh),
				entity.Present(entity.SourceSystem, entity.ThemeDark, entity.ConfidenceMedium),
			},
			wantValue:  entity.ThemeDark,
			wantSource: entity.SourceSystem,
			wantConf:   entity.ConfidenceMedium,
		},
		{
			name:       "nothing survives yields fallback",
			candidates: nil,
			wantValue:  entity.ThemeLight,
			wantSource: entity.SourceFallback,
			wantConf:   entity.ConfidenceLow,
		},
		{
			name: "higher confidence wins within one source",
			candidates: []entity.Candidate[entity.Theme]{
				entity.Present(entity.SourceSystem, entity.ThemeLight, entity.ConfidenceMedium),
				entity.Present(entity.SourceSystem, entity.ThemeDark, entity.ConfidenceHigh),
			},
			wantValue:  entity.ThemeDark,
			wantSource: entity.SourceSystem,
			wantConf:   entity.ConfidenceHigh,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(dom, tt.candidates, themeConfig(), now)
			assert.Equal(t, tt.wantValue, got.Value)
			assert.Equal(t, tt.wantSource, got.Source)
			assert.Equal(t, tt.wantConf, got.Confidence)
			assert.Equal(t, now, got.ResolvedAt)
		})
	}
}

func TestResolveDeterministic(t *testing.T) {
	dom := entity.NewThemeDomain()
	now := time.Now()
	candidates := []entity.Candidate[entity.Theme]{
		entity.Present(entity.SourceHostApp, entity.ThemeDark, entity.ConfidenceHigh),
		entity.Present(entity.SourceSystem, entity.ThemeLight, entity.ConfidenceMedium),
	}

	first := Resolve(dom, candidates, themeConfig(), now)
	for i := 0; i < 10; i++ {
		again := Resolve(dom, candidates, themeConfig(), now)
		assert.Equal(t, first, again)
	}
}

func TestResolveNormalizesWinner(t *testing.T) {
	dom, err := entity.NewLanguageDomain([]string{"en", "zh"})
	require.NoError(t, err)

	cfg := entity.EngineConfig[string]{
		Kind:     entity.KindLanguage,
		Priority: entity.DefaultPriority(),
		Default:  "en",
	}
	got := Resolve[string](dom, []entity.Candidate[string]{
		entity.Present(entity.SourceHostApp, "ZH-hans-cn", entity.ConfidenceHigh),
	}, cfg, time.Now())

	assert.Equal(t, "zh-Hans-CN", got.Value)
	assert.Equal(t, entity.SourceHostApp, got.Source)
}

func TestResolveLanguageConfidenceGate(t *testing.T) {
	dom, err := entity.NewLanguageDomain([]string{"en", "ru"})
	require.NoError(t, err)

	cfg := entity.EngineConfig[string]{
		Kind:     entity.KindLanguage,
		Priority: entity.DefaultPriority(),
		Default:  "en",
	}

	// A low-confidence host reading is refused by the domain and the
	// system locale wins instead.
	got := Resolve[string](dom, []entity.Candidate[string]{
		entity.Present(entity.SourceHostApp, "ru", entity.ConfidenceLow),
		entity.Present(entity.SourceSystem, "en", entity.ConfidenceMedium),
	}, cfg, time.Now())

	assert.Equal(t, "en", got.Value)
	assert.Equal(t, entity.SourceSystem, got.Source)
}

func TestResolveNegativeInsetsDiscarded(t *testing.T) {
	dom := entity.NewInsetsDomain()
	cfg := entity.EngineConfig[entity.Insets]{
		Kind:     entity.KindInsets,
		Priority: entity.DefaultPriority(),
	}

	got := Resolve[entity.Insets](dom, []entity.Candidate[entity.Insets]{
		entity.Present(entity.SourceHostApp, entity.Insets{Top: 44, Bottom: -1}, entity.ConfidenceHigh),
		entity.Present(entity.SourceSystem, entity.Insets{Top: 20}, entity.ConfidenceMedium),
	}, cfg, time.Now())

	assert.Equal(t, entity.Insets{Top: 20}, got.Value)
	assert.Equal(t, entity.SourceSystem, got.Source)
}

func TestResolveUnlistedSourceNeverWins(t *testing.T) {
	dom := entity.NewThemeDomain()
	cfg := entity.EngineConfig[entity.Theme]{
		Kind:     entity.KindTheme,
		Priority: []entity.Source{entity.SourceManual, entity.SourceHostApp},
		Default:  entity.ThemeLight,
	}

	got := Resolve(dom, []entity.Candidate[entity.Theme]{
		entity.Present(entity.SourceSystem, entity.ThemeDark, entity.ConfidenceHigh),
	}, cfg, time.Now())

	assert.Equal(t, entity.SourceFallback, got.Source)
	assert.Equal(t, entity.ThemeLight, got.Value)
}
