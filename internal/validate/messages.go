package validate

const invalidInputMessage = "入力内容が正しくありません"

// messageTable maps field name and validator tag to the message shown next
// to the field.
type messageTable map[string]map[string]string

func (t messageTable) message(field, tag string) string {
	if m, ok := t[field][tag]; ok {
		return m
	}
	return invalidInputMessage
}

var idMessages = map[string]string{
	"required": "IDは必須です",
	"uuid":     "無効なIDです",
}

var userMessages = messageTable{
	FieldID: idMessages,
	FieldName: {
		"required": "名前は必須です",
		"max":      "名前は255文字以内で入力してください",
	},
	FieldEmail: {
		"required": "メールアドレスは必須です",
		"email":    "有効なメールアドレスを入力してください",
		"max":      "メールアドレスは255文字以内で入力してください",
	},
	FieldPassword: {
		"required": "パスワードは6文字以上で入力してください",
		"min":      "パスワードは6文字以上で入力してください",
		"max":      "パスワードは72文字以内で入力してください",
	},
	FieldRole: {
		"required": "権限を選択してください",
		"oneof":    "権限はuserまたはadminを選択してください",
	},
}

var productMessages = messageTable{
	FieldID: idMessages,
	FieldName: {
		"required": "商品名は必須です",
		"max":      "商品名は255文字以内で入力してください",
	},
	FieldDescription: {
		"max": "説明は1000文字以内で入力してください",
	},
	FieldPrice: {
		"required": "価格は必須です",
		"number":   "価格は数値で入力してください",
		"scale":    "価格は小数点以下2桁までで入力してください",
		"min":      "価格は0以上で入力してください",
		"max":      "価格は9999999999.99以下で入力してください",
	},
	FieldStock: {
		"integer": "在庫数は0以上の整数で入力してください",
		"min":     "在庫数は0以上の整数で入力してください",
		"max":     "在庫数が大きすぎます",
	},
	FieldCategory: {
		"max": "カテゴリは100文字以内で入力してください",
	},
	FieldImage: {
		"url": "有効なURLを入力してください",
	},
	FieldUserID: {
		"required": "ユーザーを選択してください",
		"uuid":     "無効なユーザーIDです",
	},
}
