package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"hostelmate-data/internal/domain"
	"hostelmate-data/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var validate = newValidator()

// newValidator 校验错误使用 json 字段名
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// entityRules 单个实体的主键/owner 访问方式与写入前的业务规则
type entityRules[T any] struct {
	name     string
	id       func(*T) *string
	owner    func(*T) *string // nil 表示全局数据（无 owner）
	// prepare 补齐派生字段并校验引用（引用按实体 owner 查找，不允许跨 owner 引用）
	prepare func(ctx context.Context, refs domain.Caller, v *T) error
	// canWrite 为 nil 时任何已认证调用方都可以写
	canWrite func(caller domain.Caller) bool
}

// EntityService 按 owner 隔离的通用 CRUD 服务
// - Create 时生成 UUID 并将 owner 设为调用方
// - Update 保留原 owner，不允许通过请求体转移
// - 不存在与不属于调用方统一返回 repository.ErrNotFound
type EntityService[T any] struct {
	store  repository.Store[T]
	rules  entityRules[T]
	logger *zap.Logger
}

func newEntityService[T any](store repository.Store[T], rules entityRules[T], logger *zap.Logger) *EntityService[T] {
	return &EntityService[T]{store: store, rules: rules, logger: logger}
}

// Name 实体名（用于日志与错误信息）
func (s *EntityService[T]) Name() string { return s.rules.name }

func (s *EntityService[T]) List(ctx context.Context, caller domain.Caller) ([]*T, error) {
	items, err := s.store.List(ctx, caller)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", s.rules.name, err)
	}
	return items, nil
}

func (s *EntityService[T]) Get(ctx context.Context, caller domain.Caller, id string) (*T, error) {
	v, err := s.store.Get(ctx, caller, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get %s: %w", s.rules.name, err)
	}
	return v, nil
}

func (s *EntityService[T]) Create(ctx context.Context, caller domain.Caller, v *T) (*T, error) {
	// 1. 权限
	if err := s.checkWrite(caller); err != nil {
		return nil, err
	}

	// 2. 主键与 owner 由服务端决定
	*s.rules.id(v) = uuid.NewString()
	owner := ""
	if s.rules.owner != nil {
		owner = caller.OwnerID
		*s.rules.owner(v) = owner
	}

	// 3. 派生字段、引用校验、结构校验
	if err := s.check(ctx, owner, v); err != nil {
		return nil, err
	}

	// 4. 写入后按调用方视角读回（带上数据库生成的时间戳）
	if err := s.store.Create(ctx, v); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", s.rules.name, err)
	}
	s.logger.Info("Created "+s.rules.name,
		zap.String("id", *s.rules.id(v)),
		zap.String("owner_id", owner),
	)
	return s.Get(ctx, caller, *s.rules.id(v))
}

func (s *EntityService[T]) Update(ctx context.Context, caller domain.Caller, id string, v *T) (*T, error) {
	if err := s.checkWrite(caller); err != nil {
		return nil, err
	}

	existing, err := s.Get(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	*s.rules.id(v) = *s.rules.id(existing)
	owner := ""
	if s.rules.owner != nil {
		owner = *s.rules.owner(existing)
		*s.rules.owner(v) = owner
	}

	if err := s.check(ctx, owner, v); err != nil {
		return nil, err
	}

	if err := s.store.Update(ctx, caller, v); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update %s: %w", s.rules.name, err)
	}
	return s.Get(ctx, caller, *s.rules.id(v))
}

func (s *EntityService[T]) Delete(ctx context.Context, caller domain.Caller, id string) error {
	if err := s.checkWrite(caller); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, caller, strings.TrimSpace(id)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete %s: %w", s.rules.name, err)
	}
	s.logger.Info("Deleted "+s.rules.name, zap.String("id", id), zap.String("owner_id", caller.OwnerID))
	return nil
}

func (s *EntityService[T]) checkWrite(caller domain.Caller) error {
	if s.rules.canWrite != nil && !s.rules.canWrite(caller) {
		return fmt.Errorf("%w: %s is read-only", ErrForbidden, s.rules.name)
	}
	return nil
}

func (s *EntityService[T]) check(ctx context.Context, owner string, v *T) error {
	if s.rules.prepare != nil {
		if err := s.rules.prepare(ctx, domain.Caller{OwnerID: owner}, v); err != nil {
			return err
		}
	}
	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return invalidInput(fe.Field(), fmt.Sprintf("failed on '%s' validation", fe.Tag()))
		}
		return invalidInput("", err.Error())
	}
	return nil
}
