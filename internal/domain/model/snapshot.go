package model

import "time"

// バックアップ・インポート・ローカル保存の共通ドキュメント。
// キー名は既存データファイルとの互換のため固定。
type Snapshot struct {
	Produtos    []Product `json:"produtos"`
	Vendas      []Sale    `json:"vendas"`
	LastUpdated time.Time `json:"lastUpdated"`
}
