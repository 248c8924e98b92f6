package constant

const (
	ChatMessageRoleUser   = "user"
	ChatMessageRoleModel  = "model"
	ChatMessageRoleSystem = "system"
)

// System instructions selected by the response policy. The strict variant is
// only used when retrieval confidence is high; the model must then refuse to
// improvise beyond the provided context.
const (
	InstructionStrictContextV1 = `You are a knowledge-base assistant.
Answer STRICTLY from the material inside <context>. Do not use outside
knowledge. If the context does not contain the answer, say explicitly that
the knowledge base has no information about it. Reply in the user's language.`

	InstructionPreferContextV1 = `You are a helpful assistant.
Prefer the material inside <context> when it is relevant. If the context is
insufficient for the question, fall back to general knowledge or search
results and answer helpfully. Reply in the user's language.`

	InstructionGeneralAssistantV1 = `You are a helpful, concise assistant.
Answer the user's question directly. Reply in the user's language.`
)

// User-facing reply strings. Internal error detail goes to the log only.
const (
	ReplyGenerationBusy    = "⚠️ 目前系統忙碌或 API 無法回應，請稍後再試。"
	ReplyUnknownError      = "⚠️ 發生未知錯誤，請稍後再試。"
	ReplyTruncationMarker  = "…（回覆過長，已截斷）"
	ReplyIngestUsage       = "⚠️ 指令格式：/新增知識: 內容（內容不可為空）"
	ReplyIngestOKPrefix    = "✅ 已新增知識："
	ReplyEmbedderDown      = "⚠️ 無法連線到向量服務，知識未儲存，請稍後再試。"
	ReplyEmbeddingFailed   = "⚠️ 向量產生失敗，知識未儲存，請稍後再試。"
	ReplyStorageFailed     = "⚠️ 知識儲存失敗，請稍後再試。"
	ReplyWelcomeFormat     = "👋 歡迎 %s 加入群組！"
	ReplyWelcomeFallback   = "👋 歡迎加入群組！"
	RebuildDisabledMessage = "destructive reset is disabled (set ALLOW_DESTRUCTIVE_RESET=true)"
)
