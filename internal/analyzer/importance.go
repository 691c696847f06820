package analyzer

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"ins-news-go/internal/model"
)

// 重要性等级，阈值固定：finalScore >= 0.75 为高，>= 0.4 为中。
const (
	LevelHigh   = "高"
	LevelMedium = "中"
	LevelLow    = "低"
)

// 业务调校好的维度权重，未经产品方重新校准不得修改。
const (
	weightRegulatory = 0.30
	weightBusiness   = 0.25
	weightTimeliness = 0.20
	weightClient     = 0.15
	weightTrend      = 0.10

	// 单一关键词出现次数计分上限，避免同一词刷分。
	occurrenceCap = 3
)

// ImportanceRater 是 (文章, 词表, 当前时间) 的纯函数式评分器，无内部状态。
type ImportanceRater struct {
	table     KeywordWeightTable
	processor *TextProcessor
}

// NewImportanceRater 创建 ImportanceRater。
func NewImportanceRater(table KeywordWeightTable, processor *TextProcessor) *ImportanceRater {
	return &ImportanceRater{table: table, processor: processor}
}

// combinedText 拼接标题两次 + 摘要 + 正文，标题权重因此翻倍。
func (r *ImportanceRater) combinedText(article *model.Article) string {
	return CleanText(strings.Join([]string{
		article.Title, article.Title, article.Summary, article.Content,
	}, " "))
}

// Rate 计算五个维度与加权总分，所有值均落在 [0,1]。
func (r *ImportanceRater) Rate(article *model.Article, now time.Time) model.ImportanceResult {
	text := r.combinedText(article)

	regulatory := r.dimensionScore(text, r.table.Category(CategoryRegulatory))

	// 业务与趋势维度本身是子维度的加权混合。
	business := 0.5*r.dimensionScore(text, r.table.Category(CategoryBusiness)) +
		0.3*r.dimensionScore(text, r.table.Category(CategoryProduct)) +
		0.2*r.dimensionScore(text, r.table.Category(CategoryEnterprise))
	trend := 0.6*r.dimensionScore(text, r.table.Category(CategoryTrend)) +
		0.4*r.dimensionScore(text, r.table.Category(CategoryMajorEvent))

	client := r.dimensionScore(text, r.table.Category(CategoryClient))
	timeliness := timelinessScore(article.PublishedAt, now)

	dims := model.ImportanceDimensions{
		Regulatory: clamp01(regulatory),
		Business:   clamp01(business),
		Timeliness: clamp01(timeliness),
		Client:     clamp01(client),
		Trend:      clamp01(trend),
	}

	final := weightRegulatory*dims.Regulatory +
		weightBusiness*dims.Business +
		weightTimeliness*dims.Timeliness +
		weightClient*dims.Client +
		weightTrend*dims.Trend

	return model.ImportanceResult{
		FinalScore: clamp01(final),
		Level:      importanceLevel(final),
		Dimensions: dims,
	}
}

// dimensionScore 计算单个维度得分：
// raw = Σ min(出现次数, 3) * 权重，分母取该维度词表中最大的 3 个权重之和。
func (r *ImportanceRater) dimensionScore(text string, keywords map[string]float64) float64 {
	if len(keywords) == 0 || text == "" {
		return 0.0
	}

	raw := 0.0
	weights := make([]float64, 0, len(keywords))
	for kw, weight := range keywords {
		weights = append(weights, weight)
		count := strings.Count(text, kw)
		if count == 0 {
			continue
		}
		if count > occurrenceCap {
			count = occurrenceCap
		}
		raw += float64(count) * weight
	}

	sort.Sort(sort.Reverse(sort.Float64Slice(weights)))
	maxPossible := 0.0
	for i := 0; i < len(weights) && i < 3; i++ {
		maxPossible += weights[i]
	}
	if maxPossible == 0 {
		maxPossible = 1
	}

	score := raw / maxPossible
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// timelinessScore 按发布距今天数做分段衰减，缺失发布时间取 0.5。
func timelinessScore(publishedAt *time.Time, now time.Time) float64 {
	if publishedAt == nil || publishedAt.IsZero() {
		return 0.5
	}
	days := now.Sub(*publishedAt).Hours() / 24
	switch {
	case days <= 1:
		return 1.0
	case days <= 2:
		return 0.9
	case days <= 3:
		return 0.8
	case days <= 5:
		return 0.7
	case days <= 7:
		return 0.6
	case days <= 14:
		return 0.4
	case days <= 30:
		return 0.3
	default:
		return 0.2
	}
}

func importanceLevel(score float64) string {
	switch {
	case score >= 0.75:
		return LevelHigh
	case score >= 0.4:
		return LevelMedium
	default:
		return LevelLow
	}
}

// BusinessImpact 推导业务影响分类：对 8 组影响类型关键词打分，
// 取最高者为主类型，次高分达主类型 0.7 倍时并列为次类型。
func (r *ImportanceRater) BusinessImpact(article *model.Article, now time.Time) model.BusinessImpact {
	text := r.combinedText(article)
	dims := r.Rate(article, now).Dimensions

	primary, secondary := topTwoGroups(r.groupScores(text, impactTaxonomy))
	primaryType := "一般業務"
	secondaryType := ""
	if primary.score > 0 {
		primaryType = primary.name
		if secondary.score >= primary.score*0.7 && secondary.score > 0 {
			secondaryType = secondary.name
		}
	}

	impactScore := clamp01(0.4*dims.Regulatory + 0.3*dims.Business +
		0.2*dims.Timeliness + 0.1*dims.Client)

	level, urgency := impactBand(impactScore)

	action := impactActions[primaryType]
	if secondaryType != "" {
		if secondaryAction := impactActions[secondaryType]; secondaryAction != "" && secondaryAction != action {
			action = action + "；" + secondaryAction
		}
	}

	return model.BusinessImpact{
		Type:          primaryType,
		SecondaryType: secondaryType,
		Score:         impactScore,
		Level:         level,
		Urgency:       urgency,
		Action:        action,
	}
}

// ClientInterest 估计保户兴趣：对 8 组保户关注面向打分，
// 叠加维度加权与类别加成后落在 [0,1]。
func (r *ImportanceRater) ClientInterest(article *model.Article, now time.Time) model.ClientInterest {
	text := r.combinedText(article)
	dims := r.Rate(article, now).Dimensions

	scores := r.groupScores(text, clientConcernTaxonomy)
	primary, secondary := topTwoGroups(scores)

	categoryBonus := primary.score / 5
	if categoryBonus > 0.3 {
		categoryBonus = 0.3
	}

	interestScore := clamp01(0.6*dims.Client + 0.1*dims.Regulatory +
		0.2*dims.Business + 0.1*dims.Timeliness + categoryBonus)

	var categories []string
	reason := clientReasonNone
	if primary.score > 0 {
		categories = append(categories, primary.name)
		if secondary.score > 0 {
			categories = append(categories, secondary.name)
			reason = fmt.Sprintf(clientReasonDouble, primary.name, secondary.name)
		} else {
			reason = fmt.Sprintf(clientReasonSingle, primary.name)
		}
	}

	level := LevelLow
	switch {
	case interestScore >= 0.7:
		level = LevelHigh
	case interestScore >= 0.4:
		level = LevelMedium
	}

	return model.ClientInterest{
		Level:      level,
		Score:      interestScore,
		Reason:     reason,
		Categories: categories,
	}
}

// groupScores 对一组分类词表打分：score = Σ命中次数 + 0.5*命中词数。
func (r *ImportanceRater) groupScores(text string, taxonomy map[string][]string) map[string]float64 {
	scores := make(map[string]float64, len(taxonomy))
	for group, keywords := range taxonomy {
		counts := r.processor.FindKeywords(text, keywords, true)
		total := 0
		for _, c := range counts {
			total += c
		}
		scores[group] = float64(total) + 0.5*float64(len(counts))
	}
	return scores
}

type groupScore struct {
	name  string
	score float64
}

// topTwoGroups 返回得分最高的两组；并列时按组名排序保证确定性。
func topTwoGroups(scores map[string]float64) (groupScore, groupScore) {
	ranked := make([]groupScore, 0, len(scores))
	for name, score := range scores {
		ranked = append(ranked, groupScore{name: name, score: score})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].name < ranked[j].name
	})

	var first, second groupScore
	if len(ranked) > 0 {
		first = ranked[0]
	}
	if len(ranked) > 1 {
		second = ranked[1]
	}
	return first, second
}

// impactBand 把影响分数映射为等级与紧急度描述。
func impactBand(score float64) (string, string) {
	switch {
	case score >= 0.7:
		return LevelHigh, "亟需關注"
	case score >= 0.4:
		return LevelMedium, "建議關注"
	default:
		return LevelLow, "可作參考"
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
