package analyzer

import (
	"encoding/json"
	"fmt"
	"os"

	"ins-news-go/pkg/log"
)

// KeywordWeightTable 是类别 -> (关键词 -> 权重) 的只读词表，启动时加载一次。
type KeywordWeightTable map[string]map[string]float64

// 词表类别名。重要性评分各维度从这些类别取词。
const (
	CategoryRegulatory = "高重要性"
	CategoryBusiness   = "業務相關"
	CategoryProduct    = "產品相關"
	CategoryTrend      = "市場趨勢"
	CategoryClient     = "客戶服務"
	CategoryEnterprise = "企業動態"
	CategoryMajorEvent = "重大事件"
)

// defaultKeywordTable 是内建的最小默认词表。
// 配置文件缺失或损坏时回退使用，结构与外部 JSON 完全一致。
var defaultKeywordTable = KeywordWeightTable{
	CategoryRegulatory: {
		"金管會": 1.0, "保險局": 0.9, "裁罰": 0.9, "法規": 0.8,
		"修法": 0.8, "準備金": 0.8, "資本適足率": 0.7, "清償能力": 0.7,
	},
	CategoryBusiness: {
		"保費": 0.8, "理賠": 0.8, "業務員": 0.7, "招攬": 0.6,
		"通路": 0.6, "銀行保險": 0.6, "保費收入": 0.7,
	},
	CategoryProduct: {
		"保單": 0.7, "醫療險": 0.7, "投資型保單": 0.7, "利變型保單": 0.6,
		"停售": 0.8, "新商品": 0.6, "長照險": 0.6,
	},
	CategoryTrend: {
		"利率": 0.7, "市場": 0.5, "成長": 0.5, "衰退": 0.6,
		"保險科技": 0.6, "高齡化": 0.6, "通膨": 0.6,
	},
}

// LoadKeywordTable 从 path 加载关键词权重表。
// 文件缺失与内容损坏是两种不同的降级路径，都会回退到内建默认表并分别告警。
func LoadKeywordTable(path string) KeywordWeightTable {
	if path == "" {
		log.Warnf("[analyzer] 未配置关键词词表路径，使用内建默认词表")
		return defaultKeywordTable
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Warnf("[analyzer] 关键词词表文件不存在或不可读 (%s): %v，使用内建默认词表", path, err)
		return defaultKeywordTable
	}

	var table KeywordWeightTable
	if err := json.Unmarshal(data, &table); err != nil {
		log.Errorf("[analyzer] 关键词词表文件格式损坏 (%s): %v，使用内建默认词表", path, err)
		return defaultKeywordTable
	}

	if err := validateKeywordTable(table); err != nil {
		log.Errorf("[analyzer] 关键词词表内容不合法 (%s): %v，使用内建默认词表", path, err)
		return defaultKeywordTable
	}

	log.Infof("[analyzer] 关键词词表加载成功: %s, 共 %d 个类别", path, len(table))
	return table
}

// validateKeywordTable 校验词表结构：类别和关键词非空、权重为正。
// 内建默认表与外部配置走同一套校验。
func validateKeywordTable(table KeywordWeightTable) error {
	if len(table) == 0 {
		return fmt.Errorf("词表为空")
	}
	for category, keywords := range table {
		if category == "" {
			return fmt.Errorf("存在空类别名")
		}
		if len(keywords) == 0 {
			return fmt.Errorf("类别 %q 下没有关键词", category)
		}
		for kw, weight := range keywords {
			if kw == "" {
				return fmt.Errorf("类别 %q 下存在空关键词", category)
			}
			if weight <= 0 {
				return fmt.Errorf("类别 %q 关键词 %q 权重必须为正, 得到 %v", category, kw, weight)
			}
		}
	}
	return nil
}

// Category 返回指定类别的关键词权重映射；类别不存在时返回空映射。
func (t KeywordWeightTable) Category(name string) map[string]float64 {
	if kws, ok := t[name]; ok {
		return kws
	}
	return map[string]float64{}
}

// CategoryKeywords 把词表展平成 类别 -> 关键词列表，供主题分类使用。
func (t KeywordWeightTable) CategoryKeywords() map[string][]string {
	out := make(map[string][]string, len(t))
	for category, keywords := range t {
		terms := make([]string, 0, len(keywords))
		for kw := range keywords {
			terms = append(terms, kw)
		}
		out[category] = terms
	}
	return out
}
