package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"tableflip.dev/penpal/pkg/entry"
	"tableflip.dev/penpal/pkg/logging"
)

// ErrUnavailable is the explicit absent result for the analysis path. There
// is no canned substitute for a personalized mood score, so callers surface a
// retryable failure message instead.
var ErrUnavailable = errors.New("gemini: analysis unavailable")

const analysisSystemPrompt = `You are a psychological counselor and fortune teller.
Analyze the user's diary entry and provide an "Emotional Insight" report.

Output JSON schema:
{
  "mood_score": number (0-100),
  "emotional_weather": string (e.g., "晴れ時々曇り", "大嵐", "快晴"),
  "hidden_emotions": string (Briefly explain subconscious feelings),
  "lucky_action": string (A small, positive action suggested for tomorrow),
  "deep_advice": string (One sentence of profound advice)
}
Response in Japanese.
`

const defaultWeather = "不明"
const defaultMoodScore = 50

// analysisPayload holds the loosely-typed report fields before coercion.
// Every field is interface{} because nothing about the upstream types is
// trusted.
type analysisPayload struct {
	MoodScore        interface{} `json:"mood_score"`
	EmotionalWeather interface{} `json:"emotional_weather"`
	HiddenEmotions   interface{} `json:"hidden_emotions"`
	LuckyAction      interface{} `json:"lucky_action"`
	DeepAdvice       interface{} `json:"deep_advice"`
}

// Analyze requests the five-field insight report for the entry text. Any
// failure returns ErrUnavailable; on success every field is defensively
// coerced into its documented bounds.
func (c *Client) Analyze(ctx context.Context, apiKey, text string) (*entry.Analysis, error) {
	res := c.generate(ctx, apiKey, analysisSystemPrompt, text)
	if res.Status != StatusOK {
		logging.Errorf(logging.CategoryAPI, "analysis: %v", res.Err)
		return nil, ErrUnavailable
	}

	var payload analysisPayload
	if err := json.Unmarshal([]byte(res.Text), &payload); err != nil {
		logging.Errorf(logging.CategoryAPI, "analysis: parse payload: %v", err)
		return nil, ErrUnavailable
	}

	report := entry.ClampAnalysis(entry.Analysis{
		MoodScore:      coerceScore(payload.MoodScore),
		Weather:        coerceString(payload.EmotionalWeather, defaultWeather),
		HiddenEmotions: coerceString(payload.HiddenEmotions, ""),
		LuckyAction:    coerceString(payload.LuckyAction, ""),
		DeepAdvice:     coerceString(payload.DeepAdvice, ""),
	})
	return &report, nil
}

// coerceScore accepts numbers and numeric strings; anything else defaults to
// the midpoint. Clamping to [0,100] happens in ClampAnalysis.
func coerceScore(v interface{}) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case string:
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return int(f)
		}
		return defaultMoodScore
	default:
		return defaultMoodScore
	}
}

func coerceString(v interface{}, def string) string {
	switch s := v.(type) {
	case nil:
		return def
	case string:
		if s == "" {
			return def
		}
		return s
	default:
		return fmt.Sprint(v)
	}
}
