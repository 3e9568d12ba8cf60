package orm

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/superj80820/url-shortener/domain"
	ormKit "github.com/superj80820/url-shortener/kit/orm"
	utilKit "github.com/superj80820/url-shortener/kit/util"
)

type linkEntity struct {
	ID        int64     `gorm:"primaryKey;autoIncrement:false"`
	Code      string    `gorm:"size:8;not null;uniqueIndex:idx_links_code"`
	Target    string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (linkEntity) TableName() string {
	return "links"
}

func (l *linkEntity) toDomain() *domain.Link {
	return &domain.Link{
		ID:        l.ID,
		Code:      l.Code,
		Target:    l.Target,
		CreatedAt: l.CreatedAt,
	}
}

type linkRepo struct {
	orm *ormKit.DB
}

func CreateLinkRepo(orm *ormKit.DB) domain.LinkRepo {
	return &linkRepo{
		orm: orm,
	}
}

func Migrate(orm *ormKit.DB) error {
	if err := orm.AutoMigrate(&linkEntity{}); err != nil {
		return errors.Wrap(err, "migrate links failed")
	}
	return nil
}

func (l *linkRepo) Create(ctx context.Context, code, target string) (*domain.Link, error) {
	uniqueIDGenerate, err := utilKit.GetUniqueIDGenerate()
	if err != nil {
		return nil, errors.Wrap(err, "generate unique id failed")
	}

	link := linkEntity{
		ID:        uniqueIDGenerate.Generate().GetInt64(),
		Code:      code,
		Target:    target,
		CreatedAt: time.Now().UTC(),
	}
	if err := l.orm.WithContext(ctx).Create(&link).Error; ormKit.IsDuplicatedKey(err) {
		return nil, errors.Wrap(domain.ErrDuplicate, "code "+code+" already exists")
	} else if err != nil {
		return nil, errors.Wrap(err, "create link failed")
	}

	return link.toDomain(), nil
}

func (l *linkRepo) Get(ctx context.Context, code string) (*domain.Link, error) {
	var link linkEntity
	if err := l.orm.WithContext(ctx).Where("code = ?", code).First(&link).Error; errors.Is(err, ormKit.ErrRecordNotFound) {
		return nil, errors.Wrap(domain.ErrNoData, "link "+code+" not found")
	} else if err != nil {
		return nil, errors.Wrap(err, "get link failed")
	}
	return link.toDomain(), nil
}

func (l *linkRepo) Exists(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := l.orm.WithContext(ctx).Model(&linkEntity{}).Where("code = ?", code).Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "count link failed")
	}
	return count > 0, nil
}

func (l *linkRepo) Ping(ctx context.Context) error {
	return l.orm.Ping(ctx)
}
