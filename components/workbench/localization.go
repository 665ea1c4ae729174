package workbench

import (
	"context"
	"strings"
)

// Supported language tags for user-facing notices and insight requests.
const (
	LocaleEN = "en"
	LocaleZH = "zh"
)

var translations = map[string]map[string]string{
	LocaleEN: {
		"workbench.no_data_source":      "No data source",
		"workbench.analyzing":           "Analyzing data...",
		"workbench.total":               "Total",
		"workbench.protected_dashboard": "The system dashboard cannot be modified",
		"workbench.protected_table":     "The system table cannot be modified",
		"workbench.insight_failed":      "AI analysis failed. Please retry.",
		"workbench.insight_empty":       "AI returned an empty analysis.",
		"workbench.insight_prefix":      "Insight: ",
	},
	LocaleZH: {
		"workbench.no_data_source":      "暂无数据源",
		"workbench.analyzing":           "正在分析数据...",
		"workbench.total":               "合计",
		"workbench.protected_dashboard": "系统仪表盘不可修改",
		"workbench.protected_table":     "系统数据表不可修改",
		"workbench.insight_failed":      "AI 分析失败，请重试。",
		"workbench.insight_empty":       "AI 返回了空的分析结果。",
		"workbench.insight_prefix":      "洞察：",
	},
}

// T resolves a notice string for the locale. Language-region pairs (`zh-tw`)
// fall back to their base language, then to English, then to the key itself.
func T(locale, key string) string {
	for _, candidate := range localeCandidates(locale) {
		if table, ok := translations[candidate]; ok {
			if value, ok := table[key]; ok && value != "" {
				return value
			}
		}
	}
	return key
}

func localeCandidates(locale string) []string {
	locale = strings.TrimSpace(strings.ToLower(locale))
	candidates := make([]string, 0, 3)
	if locale != "" {
		candidates = append(candidates, locale)
		if idx := strings.Index(locale, "-"); idx > 0 {
			candidates = append(candidates, locale[:idx])
		}
	}
	return append(candidates, LocaleEN)
}

// StaticTranslator serves the built-in tables through the Translator
// interface so external engines can be swapped in.
type StaticTranslator struct{}

// Translate implements Translator.
func (StaticTranslator) Translate(_ context.Context, key, locale string) (string, error) {
	return T(locale, key), nil
}

func translateOrFallback(ctx context.Context, svc Translator, key, locale, fallback string) string {
	if svc != nil {
		if translated, err := svc.Translate(ctx, key, locale); err == nil && translated != "" && translated != key {
			return translated
		}
	}
	if fallback != "" {
		return fallback
	}
	return key
}
