package analyzer

import "ins-news-go/internal/model"

// 情感标签与判定阈值。score 超过 ±0.1 才脱离 neutral。
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"

	sentimentThreshold = 0.1
)

// SentimentAnalyzer 基于固定极性词典对分词结果做情感打分。
type SentimentAnalyzer struct {
	processor *TextProcessor
}

// NewSentimentAnalyzer 创建 SentimentAnalyzer。
func NewSentimentAnalyzer(processor *TextProcessor) *SentimentAnalyzer {
	return &SentimentAnalyzer{processor: processor}
}

// Analyze 统计正负极性词并给出 label/score/confidence：
// score = (pos - neg) / max(pos+neg, 1)，confidence 随极性词密度增长。
// 空输入返回 {neutral, 0, 0}。
func (a *SentimentAnalyzer) Analyze(text string) model.SentimentResult {
	neutral := model.SentimentResult{Label: SentimentNeutral, Score: 0.0, Confidence: 0.0}

	tokens := a.processor.Segment(text)
	if len(tokens) == 0 {
		return neutral
	}

	posCount, negCount := 0, 0
	for _, tok := range tokens {
		if _, ok := positiveWords[tok]; ok {
			posCount++
		}
		if _, ok := negativeWords[tok]; ok {
			negCount++
		}
	}

	total := posCount + negCount
	denominator := total
	if denominator < 1 {
		denominator = 1
	}
	score := float64(posCount-negCount) / float64(denominator)

	label := SentimentNeutral
	if score > sentimentThreshold {
		label = SentimentPositive
	} else if score < -sentimentThreshold {
		label = SentimentNegative
	}

	density := float64(total) / float64(len(tokens)) * 5
	if density > 1.0 {
		density = 1.0
	}
	confidence := abs(score) * density

	return model.SentimentResult{Label: label, Score: score, Confidence: confidence}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
