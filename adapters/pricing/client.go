// Package pricing fetches RDS instance rates from the AWS price list API,
// with the reserved instance offerings API as a fallback for terms the
// price list does not publish.
package pricing

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awspricing "github.com/aws/aws-sdk-go-v2/service/pricing"
	pricingtypes "github.com/aws/aws-sdk-go-v2/service/pricing/types"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"rds-cost/core/types"
	"rds-cost/internal/errors"
	"rds-cost/internal/logging"
)

// The price list API is only served from a handful of regions.
const pricingEndpointRegion = "us-east-1"

// Source produces one rate fact per instance spec and purchase option.
// Implementations return an unavailable fact rather than an error when the
// catalog simply has no price for the combination.
type Source interface {
	Fetch(ctx context.Context, spec types.InstanceSpec, opt types.PricingOption) (*types.RateFact, error)
}

// FallbackSource retries unavailable reserved facts through another API.
type FallbackSource interface {
	FetchReservedOffering(ctx context.Context, spec types.InstanceSpec, opt types.PricingOption) (*types.RateFact, error)
}

// AWSClient implements Source and FallbackSource against live AWS APIs.
// Results are cached per process so repeated candidates cost one call.
type AWSClient struct {
	pricing *awspricing.Client
	rds     *rds.Client
	logger  *zap.Logger

	mu    sync.RWMutex
	cache map[string]*types.RateFact
}

// NewAWSClient builds a client for one estimation run. The RDS client talks
// to the spec's region; the price list client is pinned to its fixed
// endpoint region.
func NewAWSClient(ctx context.Context, region, profile string) (*AWSClient, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if profile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(profile))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(errors.TypeConfig, "loading AWS configuration", err)
	}

	pricingCfg := cfg.Copy()
	pricingCfg.Region = pricingEndpointRegion

	return &AWSClient{
		pricing: awspricing.NewFromConfig(pricingCfg),
		rds:     rds.NewFromConfig(cfg),
		logger:  logging.Named("pricing"),
		cache:   make(map[string]*types.RateFact),
	}, nil
}

func cacheKey(spec types.InstanceSpec, opt types.PricingOption) string {
	return fmt.Sprintf("%s:%s:%s:%s:%s", spec.InstanceType, spec.Region, spec.Engine, spec.Deployment, opt)
}

func (c *AWSClient) cached(key string) (*types.RateFact, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	f, ok := c.cache[key]
	return f, ok
}

func (c *AWSClient) store(key string, f *types.RateFact) *types.RateFact {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[key] = f
	return f
}

// filters builds the price list product filters for one spec. Engines that
// share a databaseEngine value are narrowed by license model or edition.
func filters(spec types.InstanceSpec) ([]pricingtypes.Filter, error) {
	location, ok := regionNames[spec.Region]
	if !ok {
		return nil, errors.RegionUnsupported(spec.Region, "")
	}
	engine, ok := engineNames[spec.Engine]
	if !ok {
		return nil, errors.Inputf("unknown database engine %q", spec.Engine)
	}

	match := func(field, value string) pricingtypes.Filter {
		return pricingtypes.Filter{
			Type:  pricingtypes.FilterTypeTermMatch,
			Field: aws.String(field),
			Value: aws.String(value),
		}
	}

	out := []pricingtypes.Filter{
		match("instanceType", spec.InstanceType),
		match("location", location),
		match("databaseEngine", engine),
		match("deploymentOption", string(spec.Deployment)),
	}
	if model, ok := licenseModels[spec.Engine]; ok {
		out = append(out, match("licenseModel", model))
	}
	if edition, ok := databaseEditions[spec.Engine]; ok {
		out = append(out, match("databaseEdition", edition))
	}
	return out, nil
}

// Fetch prices one spec and option through the price list API. Combinations
// the price list does not carry come back as unavailable facts, not errors.
func (c *AWSClient) Fetch(ctx context.Context, spec types.InstanceSpec, opt types.PricingOption) (*types.RateFact, error) {
	key := cacheKey(spec, opt)
	if f, ok := c.cached(key); ok {
		return f, nil
	}

	productFilters, err := filters(spec)
	if err != nil {
		return c.store(key, types.Unavailable(spec, opt)), err
	}

	out, err := c.pricing.GetProducts(ctx, &awspricing.GetProductsInput{
		ServiceCode: aws.String("AmazonRDS"),
		Filters:     productFilters,
		MaxResults:  aws.Int32(1),
	})
	if err != nil {
		return c.store(key, types.Unavailable(spec, opt)), errors.Pricing("querying price list", err)
	}
	if len(out.PriceList) == 0 {
		c.logger.Debug("no price list product",
			zap.String("instance", spec.InstanceType),
			zap.String("engine", spec.Engine),
			zap.String("deployment", string(spec.Deployment)))
		return c.store(key, types.Unavailable(spec, opt)), nil
	}

	doc, err := decodeDocument(out.PriceList[0])
	if err != nil {
		return c.store(key, types.Unavailable(spec, opt)), err
	}

	fact := factFromDocument(doc, spec, opt)
	return c.store(key, fact), nil
}

// factFromDocument reads the term matching opt out of a product document.
func factFromDocument(doc *priceDocument, spec types.InstanceSpec, opt types.PricingOption) *types.RateFact {
	if opt == types.OnDemand {
		hourly, ok := parseOnDemand(doc)
		if !ok {
			return types.Unavailable(spec, opt)
		}
		return &types.RateFact{Spec: spec, Option: opt, HourlyRate: hourly, Available: true}
	}

	upfront, monthly, ok := parseReserved(doc, opt)
	if !ok {
		return types.Unavailable(spec, opt)
	}
	return &types.RateFact{Spec: spec, Option: opt, UpfrontFee: upfront, MonthlyFee: monthly, Available: true}
}

// FetchReservedOffering prices a reserved term through
// DescribeReservedDBInstancesOfferings. Some engine and term combinations
// never reach the price list but are still purchasable there.
func (c *AWSClient) FetchReservedOffering(ctx context.Context, spec types.InstanceSpec, opt types.PricingOption) (*types.RateFact, error) {
	term, ok := termFor(opt)
	if !ok {
		return types.Unavailable(spec, opt), errors.Inputf("option %s has no reserved offering", opt)
	}
	description, ok := offeringProductDescriptions[spec.Engine]
	if !ok {
		return types.Unavailable(spec, opt), errors.Inputf("unknown database engine %q", spec.Engine)
	}

	out, err := c.rds.DescribeReservedDBInstancesOfferings(ctx, &rds.DescribeReservedDBInstancesOfferingsInput{
		DBInstanceClass:    aws.String(spec.InstanceType),
		Duration:           aws.String(offeringDuration(term.Years)),
		ProductDescription: aws.String(description),
		OfferingType:       aws.String(term.PurchaseOption),
		MultiAZ:            aws.Bool(spec.Deployment == types.MultiAZ),
	})
	if err != nil {
		return types.Unavailable(spec, opt), errors.Pricing("querying reserved offerings", err)
	}
	if len(out.ReservedDBInstancesOfferings) == 0 {
		return types.Unavailable(spec, opt), nil
	}

	offering := out.ReservedDBInstancesOfferings[0]

	upfront := decimal.NewFromFloat(aws.ToFloat64(offering.FixedPrice))

	monthly := decimal.Zero
	hours := decimal.NewFromInt(types.HoursPerMonth)
	for _, charge := range offering.RecurringCharges {
		if charge.RecurringChargeFrequency != nil && *charge.RecurringChargeFrequency == "Hourly" {
			monthly = decimal.NewFromFloat(aws.ToFloat64(charge.RecurringChargeAmount)).Mul(hours)
			break
		}
	}
	if monthly.IsZero() && aws.ToFloat64(offering.UsagePrice) > 0 {
		monthly = decimal.NewFromFloat(aws.ToFloat64(offering.UsagePrice)).Mul(hours)
	}

	return &types.RateFact{Spec: spec, Option: opt, UpfrontFee: upfront, MonthlyFee: monthly, Available: true}, nil
}
