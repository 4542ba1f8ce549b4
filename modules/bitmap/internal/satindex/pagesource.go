package satindex

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/bitmap-indexer/common/errs"
	"github.com/gaze-network/bitmap-indexer/modules/bitmap/constants"
	"github.com/gaze-network/bitmap-indexer/modules/bitmap/internal/ordinals"
)

// PageSource fetches the raw text of one sat index page. Implementations do
// not decode; decoding and repair live in the store.
type PageSource interface {
	Name() string
	FetchPage(ctx context.Context, page int) (string, error)
}

// Make sure to implement the PageSource interface
var (
	_ PageSource = (*OrdPageSource)(nil)
	_ PageSource = (*S3PageSource)(nil)
)

// OrdPageSource fetches index pages from their versioned content addresses on
// the ord data service.
type OrdPageSource struct {
	datasource ordinals.Datasource
	pageIds    []ordinals.InscriptionId
}

func NewOrdPageSource(datasource ordinals.Datasource, pageIds []ordinals.InscriptionId) (*OrdPageSource, error) {
	if len(pageIds) != constants.PageCount {
		return nil, errors.Wrapf(errs.InvalidArgument, "expected %d page inscription ids, got %d", constants.PageCount, len(pageIds))
	}
	return &OrdPageSource{
		datasource: datasource,
		pageIds:    pageIds,
	}, nil
}

func (OrdPageSource) Name() string {
	return "ord"
}

func (s *OrdPageSource) FetchPage(ctx context.Context, page int) (string, error) {
	if page < 0 || page >= len(s.pageIds) {
		return "", errors.Wrapf(errs.OutOfRange, "page %d", page)
	}
	content, err := s.datasource.GetContent(ctx, s.pageIds[page])
	if err != nil {
		return "", errors.Wrapf(err, "can't fetch index page %d", page)
	}
	return content, nil
}

// S3PageSource fetches index pages from an S3 bucket holding mirrored copies
// of the page documents.
type S3PageSource struct {
	s3Client  *s3.Client
	s3Bucket  string
	keyPrefix string
}

type S3PageSourceConfig struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	KeyPrefix string `mapstructure:"key_prefix"`

	// Anonymous uses unsigned requests, for public buckets.
	Anonymous bool `mapstructure:"anonymous"`
}

func NewS3PageSource(ctx context.Context, conf S3PageSourceConfig) (*S3PageSource, error) {
	if conf.Bucket == "" {
		return nil, errors.Wrap(errs.InvalidArgument, "s3 bucket is required")
	}

	sdkConfig, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "can't load aws user config")
	}

	s3Client := s3.NewFromConfig(sdkConfig, func(o *s3.Options) {
		if conf.Region != "" {
			o.Region = conf.Region
		}
		if conf.Anonymous {
			o.Credentials = aws.AnonymousCredentials{}
		}
	})

	return &S3PageSource{
		s3Client:  s3Client,
		s3Bucket:  conf.Bucket,
		keyPrefix: conf.KeyPrefix,
	}, nil
}

func (S3PageSource) Name() string {
	return "s3"
}

func (s *S3PageSource) FetchPage(ctx context.Context, page int) (string, error) {
	key := path.Join(s.keyPrefix, fmt.Sprintf("bitmap_sat_index_%d.json", page))
	output, err := s.s3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.s3Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return "", errors.Wrapf(err, "can't fetch index page %d from s3://%s/%s", page, s.s3Bucket, key)
	}
	defer output.Body.Close()

	body, err := io.ReadAll(output.Body)
	if err != nil {
		return "", errors.Wrapf(err, "can't read index page %d body", page)
	}
	return string(body), nil
}
