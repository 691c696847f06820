// Package tasks defines the structure for tasks that are sent to Kafka.
package tasks

// ArticleTask 是爬虫投递到 Kafka 的单篇文章采集任务。
// PublishedAt 为 RFC3339 字符串，缺失时留空。
type ArticleTask struct {
	URLMD5      string `json:"url_md5"`
	URL         string `json:"url"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	Summary     string `json:"summary"`
	Source      string `json:"source"`
	PublishedAt string `json:"published_at"`
	RawHTML     string `json:"raw_html,omitempty"`
}
