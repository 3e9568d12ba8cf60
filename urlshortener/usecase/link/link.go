package link

import (
	"context"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/superj80820/url-shortener/domain"
	"github.com/superj80820/url-shortener/kit/code"
	loggerKit "github.com/superj80820/url-shortener/kit/logger"
)

const (
	maxCollisionRetries = 10
	maxInsertAttempts   = 3
)

type linkUseCase struct {
	linkRepo      domain.LinkRepo
	linkCacheRepo domain.LinkCacheRepo
	baseURL       string
	codeLength    int
	generateCode  CodeGenerator
	logger        *loggerKit.Logger
}

type Option func(*linkUseCase)

func WithCodeLength(codeLength int) Option {
	return func(l *linkUseCase) {
		l.codeLength = codeLength
	}
}

func WithCodeGenerator(generateCode CodeGenerator) Option {
	return func(l *linkUseCase) {
		l.generateCode = generateCode
	}
}

func CreateLinkUseCase(linkRepo domain.LinkRepo, linkCacheRepo domain.LinkCacheRepo, baseURL string, logger *loggerKit.Logger, options ...Option) (domain.LinkUseCase, error) {
	if linkRepo == nil || linkCacheRepo == nil || logger == nil {
		return nil, errors.New("create link use case failed")
	}
	l := &linkUseCase{
		linkRepo:      linkRepo,
		linkCacheRepo: linkCacheRepo,
		baseURL:       strings.TrimRight(baseURL, "/"),
		codeLength:    domain.DefaultCodeLength,
		generateCode:  GenerateCode,
		logger:        logger,
	}
	for _, option := range options {
		option(l)
	}
	if l.codeLength <= 0 || l.codeLength > domain.MaxCodeLength {
		return nil, errors.Errorf("code length must be between 1 and %d", domain.MaxCodeLength)
	}
	return l, nil
}

func (l *linkUseCase) Shorten(ctx context.Context, target string) (string, error) {
	for attempt := 1; attempt <= maxInsertAttempts; attempt++ {
		shortCode, err := l.allocateCode(ctx)
		if err != nil {
			return "", errors.Wrap(err, "allocate code failed")
		}

		link, err := l.linkRepo.Create(ctx, shortCode, target)
		if errors.Is(err, domain.ErrDuplicate) {
			l.logger.Warn("code taken by concurrent insert, regenerate",
				loggerKit.String("code", shortCode),
				loggerKit.Int("attempt", attempt),
			)
			continue
		} else if err != nil {
			return "", errors.Wrap(err, "save link failed")
		}

		return l.baseURL + "/" + link.Code, nil
	}
	return "", errors.Wrap(domain.ErrDuplicate, "insert link retries exhausted")
}

// allocateCode draws codes of the configured length until one is free in the
// store. After maxCollisionRetries collisions it falls back to a longer code
// without checking; the unique index on insert still guards it.
func (l *linkUseCase) allocateCode(ctx context.Context) (string, error) {
	for attempt := 1; attempt <= maxCollisionRetries; attempt++ {
		shortCode := l.generateCode(l.codeLength)
		exists, err := l.linkRepo.Exists(ctx, shortCode)
		if err != nil {
			return "", errors.Wrap(err, "check code exists failed")
		}
		if !exists {
			return shortCode, nil
		}
		l.logger.Debug("code collision",
			loggerKit.String("code", shortCode),
			loggerKit.Int("attempt", attempt),
		)
	}

	l.logger.Warn("code collision retries exhausted, use fallback length",
		loggerKit.Int("retries", maxCollisionRetries),
		loggerKit.Int("length", domain.FallbackCodeLength),
	)
	return l.generateCode(domain.FallbackCodeLength), nil
}

func (l *linkUseCase) Resolve(ctx context.Context, shortCode string) (*domain.Resolution, error) {
	if shortCode == "" || len(shortCode) > domain.MaxCodeLength {
		return nil, code.CreateErrorCode(http.StatusNotFound).AddCode(code.LinkNotFound)
	}

	target, exists, err := l.linkCacheRepo.Get(ctx, shortCode)
	if err != nil {
		l.logger.Warn("link cache unavailable, read from store",
			loggerKit.String("code", shortCode),
			loggerKit.Error(err),
		)
	} else if exists {
		return &domain.Resolution{
			Code:   shortCode,
			Target: target,
			Cached: true,
		}, nil
	}

	link, err := l.linkRepo.Get(ctx, shortCode)
	if errors.Is(err, domain.ErrNoData) {
		return nil, code.CreateErrorCode(http.StatusNotFound).AddCode(code.LinkNotFound).AddErrorMetaData(err)
	} else if err != nil {
		return nil, errors.Wrap(err, "get link failed")
	}

	if err := l.linkCacheRepo.Set(ctx, shortCode, link.Target); err != nil {
		l.logger.Warn("populate link cache failed",
			loggerKit.String("code", shortCode),
			loggerKit.Error(err),
		)
	}

	return &domain.Resolution{
		Code:   shortCode,
		Target: link.Target,
		Cached: false,
	}, nil
}
