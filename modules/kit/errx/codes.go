package errx

// 系统类错误码：对局内核与引导流程共用。
//
// 约束：
// - 这里只放跨包通用的码；领域内的拒绝原因由各包自行定义 Reason
// - "找不到/没有会话/平局" 不是错误，禁止为它们定义错误码
const (
	// CodeInternal 表示不可预期的内部错误（兜底）。
	CodeInternal Code = "INTERNAL_ERROR"
	// CodePrecondition 表示调用方违反前置条件（例如传入 nil 配置），属于编程错误。
	CodePrecondition Code = "PRECONDITION_VIOLATION"
	// CodeSettingsUnavailable 表示设置文件读写失败。
	CodeSettingsUnavailable Code = "SETTINGS_UNAVAILABLE"
	// CodeScript 表示脑本脚本加载或执行失败。
	CodeScript Code = "SCRIPT_ERROR"
	// CodeRoundState 表示回合流程在错误的阶段收到了指令。
	CodeRoundState Code = "ROUND_STATE"
)

// 统一哨兵错误（通过 WithData/WithCause 派生新对象，禁止原地修改）。
var (
	ErrInternal            = NewSys(CodeInternal, "内部错误")
	ErrPrecondition        = NewSys(CodePrecondition, "前置条件不满足")
	ErrSettingsUnavailable = NewSys(CodeSettingsUnavailable, "设置文件不可用")
	ErrScript              = NewSys(CodeScript, "脚本错误")
	ErrRoundState          = NewBiz(CodeRoundState, "回合状态不允许该操作")
)
