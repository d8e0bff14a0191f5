package core

// DomainError 是领域层的统一错误类型。
//
// 约定：
//   - 空结果（画像缺失、目录为空、无相似用户）不是错误，引擎直接返回空序列
//   - 可恢复的引擎内部错误在混合层降级为空结果，并通过 EngineReport 暴露
//   - 两个引擎同时为空才是用户可见的失败（ErrNoRecommendations）
type DomainError struct {
	Module  string // 模块名（content / collab / hybrid / store ...）
	Code    string // 错误代码（NOT_FOUND / NO_SIGNAL / INVALID_INPUT ...）
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError 创建领域错误。
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{Module: module, Code: code, Message: message}
}

// GetDomainError 取出 DomainError，不是则返回 nil。
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	if de, ok := err.(*DomainError); ok {
		return de
	}
	return nil
}

// 错误代码常量
const (
	ErrorCodeNotFound     = "NOT_FOUND"     // 资源不存在
	ErrorCodeNoSignal     = "NO_SIGNAL"     // 两个引擎都没有产出任何信号
	ErrorCodeInvalidInput = "INVALID_INPUT" // 输入无效（边界层校验）
	ErrorCodeInternal     = "INTERNAL"      // 引擎内部错误
)

// 模块名称常量
const (
	ModuleStore       = "store"
	ModuleCatalog     = "catalog"
	ModuleProfile     = "profile"
	ModuleInteraction = "interaction"
	ModuleContent     = "content"
	ModuleCollab      = "collab"
	ModuleHybrid      = "hybrid"
	ModuleService     = "service"
)

// ErrStoreNotFound 是存储层的哨兵错误：key 不存在。
var ErrStoreNotFound = NewDomainError(ModuleStore, ErrorCodeNotFound, "key not found")

// ErrNoRecommendations 是核心唯一的致命失败：两个引擎都没有任何产出。
var ErrNoRecommendations = NewDomainError(ModuleHybrid, ErrorCodeNoSignal, "failed to generate recommendations")

// IsStoreNotFound 检查错误是否为存储层 NOT_FOUND。
func IsStoreNotFound(err error) bool {
	de := GetDomainError(err)
	return de != nil && de.Module == ModuleStore && de.Code == ErrorCodeNotFound
}

// IsNoSignal 检查错误是否为"无法生成推荐"。
func IsNoSignal(err error) bool {
	de := GetDomainError(err)
	return de != nil && de.Code == ErrorCodeNoSignal
}

// IsInvalidInput 检查错误是否为边界校验失败。
func IsInvalidInput(err error) bool {
	de := GetDomainError(err)
	return de != nil && de.Code == ErrorCodeInvalidInput
}
