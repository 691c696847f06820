package analyzer

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/go-ego/gse"
	"github.com/go-ego/gse/hmm/extracker"

	"ins-news-go/internal/model"
	"ins-news-go/pkg/log"
)

// categoryScale 是主题分类得分的缩放系数，配合 min 截断把得分压进 [0,1]。
const categoryScale = 0.5

var (
	htmlTagPattern    = regexp.MustCompile(`<[^>]+>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	sentenceEnders    = "。！？"
)

// TextProcessor 包装分词器，提供关键词抽取、同义词检索、
// 类别打分与朴素摘要。对相同输入与词典状态，输出是确定的。
type TextProcessor struct {
	tokenizer Tokenizer
	extracter *extracker.TagExtracter
}

// NewTextProcessor 创建 TextProcessor。
// 若分词器能暴露底层 gse.Segmenter，则复用同一词典构建 TF-IDF 抽取器；
// 否则关键词抽取退化为词频排序。
func NewTextProcessor(tokenizer Tokenizer) *TextProcessor {
	p := &TextProcessor{tokenizer: tokenizer}

	if sp, ok := tokenizer.(interface{ Segmenter() gse.Segmenter }); ok {
		var te extracker.TagExtracter
		te.WithGse(sp.Segmenter())
		if err := te.LoadIdf(); err != nil {
			log.Warnf("[analyzer] 加载 IDF 词典失败: %v，关键词抽取退化为词频排序", err)
		} else {
			p.extracter = &te
		}
	}
	return p
}

// Segment 把原始文本切成词序列：全角转半角、去 HTML、折叠空白，
// 再按词典切词，并过滤长度 <=1 的词、纯标点词与停用词。
func (p *TextProcessor) Segment(text string) []string {
	cleaned := CleanText(text)
	if cleaned == "" {
		return nil
	}

	raw := p.tokenizer.Cut(cleaned)
	tokens := make([]string, 0, len(raw))
	for _, tok := range raw {
		tok = strings.TrimSpace(tok)
		if len([]rune(tok)) <= 1 {
			continue
		}
		if isPurePunct(tok) {
			continue
		}
		if _, stop := chineseStopwords[tok]; stop {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// ExtractKeywords 抽取权重最高的至多 topK 个关键词，按权重降序。
// 空输入返回空列表而不是错误。
func (p *TextProcessor) ExtractKeywords(text string, topK int) []model.Keyword {
	cleaned := CleanText(text)
	if cleaned == "" || topK <= 0 {
		return []model.Keyword{}
	}

	if p.extracter != nil {
		segments := p.extracter.ExtractTags(cleaned, topK)
		keywords := make([]model.Keyword, 0, len(segments))
		for _, seg := range segments {
			keywords = append(keywords, model.Keyword{Term: seg.Text, Weight: seg.Weight})
		}
		return keywords
	}

	// 词频退化路径：统计过滤后词频，按频次降序取 topK。
	counts := map[string]int{}
	for _, tok := range p.Segment(cleaned) {
		counts[tok]++
	}
	keywords := make([]model.Keyword, 0, len(counts))
	for term, c := range counts {
		keywords = append(keywords, model.Keyword{Term: term, Weight: float64(c)})
	}
	sort.SliceStable(keywords, func(i, j int) bool { return keywords[i].Weight > keywords[j].Weight })
	if len(keywords) > topK {
		keywords = keywords[:topK]
	}
	return keywords
}

// FindKeywords 统计候选关键词在文本中的出现次数。
// 计数取「子串出现次数」与「分词集合命中(记 1)」的较大者；
// useSynonyms 时同义词命中以 max 取代原词计数。只返回计数 > 0 的词。
func (p *TextProcessor) FindKeywords(text string, keywords []string, useSynonyms bool) map[string]int {
	cleaned := CleanText(text)
	result := make(map[string]int)
	if cleaned == "" || len(keywords) == 0 {
		return result
	}

	tokenSet := make(map[string]struct{})
	for _, tok := range p.Segment(cleaned) {
		tokenSet[tok] = struct{}{}
	}

	countOne := func(kw string) int {
		count := strings.Count(cleaned, kw)
		if count == 0 {
			if _, ok := tokenSet[kw]; ok {
				count = 1
			}
		}
		return count
	}

	for _, kw := range keywords {
		count := countOne(kw)
		if useSynonyms {
			for _, syn := range synonymTable[kw] {
				if c := countOne(syn); c > count {
					count = c
				}
			}
		}
		if count > 0 {
			result[kw] = count
		}
	}
	return result
}

// CategorizeText 对每个类别计算 [0,1] 的归属得分：
// score = min(总命中次数 * (命中词数/词表大小) * categoryScale, 1.0)。
// 没有命中的类别得 0 分。
func (p *TextProcessor) CategorizeText(text string, categories map[string][]string) map[string]float64 {
	scores := make(map[string]float64, len(categories))
	cleaned := CleanText(text)

	for category, keywords := range categories {
		scores[category] = 0.0
		if cleaned == "" || len(keywords) == 0 {
			continue
		}
		matched := 0
		unique := 0
		for _, kw := range keywords {
			c := strings.Count(cleaned, kw)
			if c > 0 {
				matched += c
				unique++
			}
		}
		if matched == 0 {
			continue
		}
		score := float64(matched) * (float64(unique) / float64(len(keywords))) * categoryScale
		if score > 1.0 {
			score = 1.0
		}
		scores[category] = score
	}
	return scores
}

// Summarize 做抽取式摘要：按中文终结标点切句，
// 贪心拼接直到超过 maxLength，被截断时补省略号。
func (p *TextProcessor) Summarize(text string, maxLength int) string {
	cleaned := CleanText(text)
	if cleaned == "" || maxLength <= 0 {
		return ""
	}
	if len([]rune(cleaned)) <= maxLength {
		return cleaned
	}

	sentences := splitSentences(cleaned)
	var b strings.Builder
	length := 0
	used := 0
	for _, s := range sentences {
		sLen := len([]rune(s))
		if length+sLen > maxLength {
			break
		}
		b.WriteString(s)
		length += sLen
		used++
	}
	summary := b.String()
	if used < len(sentences) {
		summary += "…"
	}
	return summary
}

// CleanText 规范化文本：全角字符转半角、去 HTML 标签、折叠空白。
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	text = htmlTagPattern.ReplaceAllString(text, " ")
	text = toHalfWidth(text)
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// toHalfWidth 把全角 ASCII 区段（ＦＦ０１-ＦＦ５Ｅ）与全角空格转为半角。
func toHalfWidth(text string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == 0x3000:
			return ' '
		case r >= 0xFF01 && r <= 0xFF5E:
			return r - 0xFEE0
		default:
			return r
		}
	}, text)
}

// isPurePunct 判断一个词是否完全由标点或符号构成。
func isPurePunct(token string) bool {
	for _, r := range token {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			return false
		}
	}
	return true
}

// splitSentences 按 。！？ 切句，终结标点保留在句尾。
func splitSentences(text string) []string {
	var sentences []string
	var current []rune
	for _, r := range text {
		current = append(current, r)
		if strings.ContainsRune(sentenceEnders, r) {
			sentences = append(sentences, string(current))
			current = current[:0]
		}
	}
	if len(current) > 0 {
		sentences = append(sentences, string(current))
	}
	return sentences
}
