package config

import (
	"fmt"
	"os"
	"strconv"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	DatabaseURL string // 空ならメモリ＋スナップショットファイル運用
	DataFile    string // スナップショットJSONの置き場所

	ShopName          string // レポートの見出しに使う店名
	LowStockThreshold int64  // 低在庫アラートの閾値
}

// Loadは環境変数
func Load() (Config, error) {
	cfg := Config{
		Port:              os.Getenv("PORT"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		DataFile:          os.Getenv("DATA_FILE"),
		ShopName:          os.Getenv("SHOP_NAME"),
		LowStockThreshold: 1,
	}

	//デフォルト
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.DataFile == "" {
		cfg.DataFile = "data/parts.json"
	}
	if cfg.ShopName == "" {
		cfg.ShopName = "Xandaocar"
	}

	if v := os.Getenv("LOW_STOCK_THRESHOLD"); v != "" {
		t, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("LOW_STOCK_THRESHOLD must be number: %w", err)
		}
		if t < 0 {
			return Config{}, fmt.Errorf("LOW_STOCK_THRESHOLD must be >= 0")
		}
		cfg.LowStockThreshold = t
	}

	return cfg, nil
}
