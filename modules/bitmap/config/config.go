package config

import (
	"time"

	"github.com/gaze-network/bitmap-indexer/modules/bitmap/internal/satindex"
)

type Config struct {
	// OrdEndpoint overrides the network's default ord data service endpoint.
	OrdEndpoint string `mapstructure:"ord_endpoint"`

	// PageSource selects where sat index pages are fetched from.
	// `ord` (default) | `s3`
	PageSource string `mapstructure:"page_source"`

	// PageIds are the inscription ids of the sat index pages, in page order.
	// Required for the `ord` page source.
	PageIds []string `mapstructure:"page_ids"`

	S3 satindex.S3PageSourceConfig `mapstructure:"s3"`

	// PrefetchPages warms all index pages at startup.
	PrefetchPages bool `mapstructure:"prefetch_pages"`

	RequestTimeout    time.Duration `mapstructure:"request_timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`

	// Debug enables request logging on the ord client.
	Debug bool `mapstructure:"debug"`
}
