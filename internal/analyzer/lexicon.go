// Package analyzer 实现保险新闻的分析与评分引擎：
// 分词、关键词抽取、情感分析、多维度重要性评分、相似度/聚类，以及两级结果缓存。
package analyzer

// chineseStopwords 是固定的中文停用词集合，分词结果中命中的词会被过滤。
var chineseStopwords = map[string]struct{}{
	"的": {}, "了": {}, "和": {}, "是": {}, "就": {}, "都": {}, "而": {}, "及": {},
	"與": {}, "著": {}, "或": {}, "一個": {}, "沒有": {}, "我們": {}, "你們": {},
	"他們": {}, "它們": {}, "這個": {}, "那個": {}, "這些": {}, "那些": {},
	"不是": {}, "而且": {}, "但是": {}, "因為": {}, "所以": {}, "如果": {},
	"雖然": {}, "以及": {}, "對於": {}, "關於": {}, "可以": {}, "這樣": {},
	"進行": {}, "表示": {}, "指出": {}, "認為": {}, "相關": {}, "方面": {},
	"目前": {}, "今天": {}, "昨日": {}, "記者": {}, "報導": {}, "新聞": {},
}

// synonymTable 是固定的同義詞表：關鍵詞 -> 同義詞列表。
// 檢索時同義詞命中以 max 取代原詞計數，不做累加。
var synonymTable = map[string][]string{
	"金管會":  {"金融監督管理委員會", "金管會保險局", "主管機關"},
	"保險局":  {"金管會保險局"},
	"壽險":   {"人壽保險", "人身保險"},
	"產險":   {"財產保險", "產物保險"},
	"保費":   {"保險費", "保費收入"},
	"理賠":   {"保險金給付", "理賠金"},
	"保單":   {"保險契約", "保險單"},
	"要保人":  {"投保人"},
	"業務員":  {"保險業務員", "保險經紀人", "招攬人員"},
	"準備金":  {"責任準備金", "增提準備金"},
	"利率":   {"利率政策", "市場利率"},
	"醫療險":  {"醫療保險", "健康險"},
	"投資型保單": {"投資型保險", "變額保險"},
	"退休":   {"退休金", "退休規劃"},
	"長照":   {"長期照顧", "長照險"},
}

// positiveWords / negativeWords 是情感分析用的固定極性詞典。
var positiveWords = map[string]struct{}{
	"成長": {}, "增加": {}, "上升": {}, "獲利": {}, "創新": {}, "突破": {},
	"領先": {}, "優惠": {}, "保障": {}, "穩健": {}, "看好": {}, "回升": {},
	"利多": {}, "受惠": {}, "擴大": {}, "升級": {}, "樂觀": {}, "改善": {},
	"強勁": {}, "豐厚": {}, "亮眼": {}, "熱銷": {}, "肯定": {}, "便利": {},
}

var negativeWords = map[string]struct{}{
	"下滑": {}, "虧損": {}, "裁罰": {}, "違規": {}, "詐欺": {}, "倒閉": {},
	"風險": {}, "衰退": {}, "下跌": {}, "糾紛": {}, "申訴": {}, "罰款": {},
	"停售": {}, "警告": {}, "疑慮": {}, "惡化": {}, "縮水": {}, "退保": {},
	"弊案": {}, "爭議": {}, "損失": {}, "重創": {}, "悲觀": {}, "凍結": {},
}

// domainTerms 是啟動時註冊進分詞器的保險領域詞彙（詞 -> 詞頻提示）。
var domainTerms = map[string]float64{
	"金管會":    5000,
	"保險局":    3000,
	"壽險":     5000,
	"產險":     4000,
	"保費":     5000,
	"理賠":     5000,
	"保單":     5000,
	"要保人":    2000,
	"被保險人":   2000,
	"受益人":    2000,
	"準備金":    3000,
	"責任準備金":  1500,
	"醫療險":    3000,
	"長照險":    2000,
	"投資型保單":  2000,
	"利變型保單":  1200,
	"外溢保單":   1000,
	"微型保險":   1000,
	"保險科技":   1500,
	"核保":     2000,
	"再保險":    1500,
	"清償能力":   1200,
	"資本適足率":  1200,
	"長壽風險":   1000,
	"保險密度":   800,
	"保險滲透度":  800,
}

// impactTaxonomy 是業務影響分類的 8 組關鍵詞。
var impactTaxonomy = map[string][]string{
	"法規遵循": {"金管會", "保險局", "法規", "裁罰", "罰款", "修法", "函令", "申報", "合規", "檢查"},
	"商品策略": {"新商品", "停售", "商品改版", "利變型保單", "投資型保單", "外溢保單", "費率", "保證利率"},
	"銷售話術": {"話術", "招攬", "業務員", "銷售", "成交", "客戶開發", "增員", "通路獎勵"},
	"通路經營": {"銀行保險", "經代", "通路", "保經", "保代", "網路投保", "電話行銷"},
	"理賠服務": {"理賠", "給付", "申訴", "糾紛", "理賠爭議", "調處", "保戶權益"},
	"投資理財": {"投資", "利率", "債券", "股市", "匯率", "避險", "資產配置", "報酬率"},
	"數位轉型": {"保險科技", "數位", "AI", "大數據", "線上投保", "行動投保", "區塊鏈"},
	"風險管理": {"風險", "清償能力", "資本適足率", "準備金", "再保險", "壓力測試", "長壽風險"},
}

// impactActions 是各業務影響類型對應的固定建議動作模板。
var impactActions = map[string]string{
	"法規遵循": "留意法遵要求變動，確認現行作業與話術符合最新規範",
	"商品策略": "檢視在售商品組合，評估停售效應與替代商品銷售機會",
	"銷售話術": "更新銷售話術與異議處理重點，於早會分享同仁",
	"通路經營": "關注通路政策變化，調整經營重心與合作策略",
	"理賠服務": "主動向保戶說明理賠權益，預防申訴與糾紛",
	"投資理財": "掌握市場動向，適時檢視客戶保單的投資配置",
	"數位轉型": "熟悉數位工具與線上投保流程，提升服務效率",
	"風險管理": "了解公司財務體質相關訊息，回應客戶疑慮",
	"一般業務": "列入每日資訊參考，視客戶屬性選擇性分享",
}

// clientConcernTaxonomy 是保戶關注面向的 8 組關鍵詞，與業務影響分類是兩套獨立詞表。
var clientConcernTaxonomy = map[string][]string{
	"保費相關": {"保費", "費率", "調漲", "降價", "繳費", "折扣", "保費收入"},
	"理賠權益": {"理賠", "給付", "理賠金", "申請", "保戶權益", "理賠爭議"},
	"退休規劃": {"退休", "年金", "退休金", "勞退", "老年給付", "退休規劃"},
	"醫療保障": {"醫療險", "健康險", "住院", "手術", "實支實付", "重大傷病", "癌症險"},
	"稅務優惠": {"節稅", "稅務", "扣除額", "遺產稅", "贈與稅", "所得稅"},
	"投資收益": {"投資型保單", "報酬", "配息", "宣告利率", "帳戶價值", "連結標的"},
	"保單服務": {"保單", "契約變更", "保單借款", "復效", "批註", "電子保單"},
	"生活保障": {"意外險", "旅平險", "車險", "住宅險", "地震險", "寵物險", "長照"},
}

// clientInterestReasons 是保戶興趣說明的模板：
// 一個類別時使用 single，兩個類別時使用 double。
const (
	clientReasonSingle = "內容涉及「%s」，與保戶切身權益相關"
	clientReasonDouble = "內容涉及「%s」與「%s」，與保戶切身權益相關"
	clientReasonNone   = "與保戶日常關注議題關聯較低"
)
