package action

import "fmt"

const (
	msgDuplicateEmail  = "このメールアドレスは既に使用されています"
	msgUserNotFound    = "ユーザーが見つかりません"
	msgProductNotFound = "商品が見つかりません"
	msgInvalidUserID   = "無効なユーザーIDです"
	msgInvalidProduct  = "無効な商品IDです"
	msgOwnerNotFound   = "指定されたユーザーが見つかりません"

	msgUserCreateFailed    = "ユーザーの作成に失敗しました。もう一度お試しください。"
	msgUserUpdateFailed    = "ユーザーの更新に失敗しました。もう一度お試しください。"
	msgUserDeleteFailed    = "ユーザーの削除に失敗しました。もう一度お試しください。"
	msgProductCreateFailed = "商品の作成に失敗しました。もう一度お試しください。"
	msgProductUpdateFailed = "商品の更新に失敗しました。もう一度お試しください。"
	msgProductDeleteFailed = "商品の削除に失敗しました。もう一度お試しください。"
)

func userCreated(name string) string { return fmt.Sprintf("ユーザー「%s」を作成しました", name) }
func userUpdated(name string) string { return fmt.Sprintf("ユーザー「%s」を更新しました", name) }
func userDeleted(name string) string { return fmt.Sprintf("ユーザー「%s」を削除しました", name) }

func productCreated(name string) string { return fmt.Sprintf("商品「%s」を作成しました", name) }
func productUpdated(name string) string { return fmt.Sprintf("商品「%s」を更新しました", name) }
func productDeleted(name string) string { return fmt.Sprintf("商品「%s」を削除しました", name) }

func userHasDependents(posts, products int) string {
	return fmt.Sprintf("このユーザーには関連データ（投稿: %d件、商品: %d件）があるため削除できません。先に関連データを削除してください。", posts, products)
}
