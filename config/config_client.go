package config

import (
	"github.com/adrianliechti/mineru/pkg/extractor"
	"github.com/adrianliechti/mineru/pkg/limiter"
	"github.com/adrianliechti/mineru/pkg/mineru"
	"github.com/adrianliechti/mineru/pkg/otel"

	mineruextractor "github.com/adrianliechti/mineru/pkg/extractor/mineru"
)

func (cfg *Config) Client() (*mineru.Client, error) {
	options := []mineru.Option{
		mineru.WithTimeout(cfg.Timeout),
	}

	client, err := cfg.proxy.proxyClient(cfg.Timeout)

	if err != nil {
		return nil, err
	}

	if client != nil {
		options = append(options, mineru.WithClient(client))
	}

	return mineru.New(cfg.URL, options...)
}

// Extractor returns the document extractor backed by the configured service,
// rate limited and instrumented.
func (cfg *Config) Extractor() (extractor.Provider, error) {
	options := []mineruextractor.Option{
		mineruextractor.WithTimeout(cfg.Timeout),
		mineruextractor.WithRequest(cfg.template),
	}

	client, err := cfg.proxy.proxyClient(cfg.Timeout)

	if err != nil {
		return nil, err
	}

	if client != nil {
		options = append(options, mineruextractor.WithClient(client))
	}

	if cfg.zip {
		options = append(options, mineruextractor.WithZip())
	}

	var p extractor.Provider

	p, err = mineruextractor.New(cfg.URL, options...)

	if err != nil {
		return nil, err
	}

	if _, ok := p.(limiter.Extractor); !ok {
		p = limiter.NewExtractor(cfg.limiter, p)
	}

	if _, ok := p.(otel.Extractor); !ok {
		p = otel.NewExtractor("mineru", cfg.template.Backend, p)
	}

	return p, nil
}
