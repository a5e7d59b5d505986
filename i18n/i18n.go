// Package i18n provides the translation table and language negotiation for
// the UI. Japanese is the primary language; English is available as a
// secondary. Unknown codes fall back to the Japanese text, then to the code
// itself so missing entries stay visible during development.
package i18n

import (
	"context"
	"strings"
)

// DefaultLang is used when no preference can be determined.
const DefaultLang = "ja"

type langKey struct{}

// WithLang returns a context carrying the resolved UI language.
func WithLang(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, langKey{}, lang)
}

// LangFromContext retrieves the UI language, defaulting to Japanese.
func LangFromContext(ctx context.Context) string {
	if lang, ok := ctx.Value(langKey{}).(string); ok && lang != "" {
		return lang
	}
	return DefaultLang
}

// DetectLanguage picks a supported language from an Accept-Language header.
func DetectLanguage(acceptLanguage string) string {
	for _, part := range strings.Split(acceptLanguage, ",") {
		tag := strings.ToLower(strings.TrimSpace(strings.SplitN(part, ";", 2)[0]))
		switch {
		case strings.HasPrefix(tag, "ja"):
			return "ja"
		case strings.HasPrefix(tag, "en"):
			return "en"
		}
	}
	return DefaultLang
}

// T translates a message code for the given language.
func T(lang, code string) string {
	if m, ok := messages[lang]; ok {
		if s, ok := m[code]; ok {
			return s
		}
	}
	if s, ok := messages[DefaultLang][code]; ok {
		return s
	}
	return code
}

var messages = map[string]map[string]string{
	"ja": {
		"app_name":       "統合販売管理システム",
		"dashboard":      "ダッシュボード",
		"customers":      "得意先",
		"suppliers":      "仕入先",
		"projects":       "案件",
		"quotes":         "見積",
		"sales_orders":   "受注",
		"invoices":       "請求",
		"delivery_notes": "納品書",
		"delivery_logs":  "送付ログ",

		"new":            "新規登録",
		"edit":           "編集",
		"delete":         "削除",
		"save":           "保存",
		"cancel":         "キャンセル",
		"back":           "戻る",
		"search":         "検索",
		"loading":        "読み込み中...",
		"no_results":     "該当するデータが見つかりません",
		"empty_list":     "データが登録されていません",
		"confirm_delete": "削除してもよろしいですか？この操作は取り消せません。",

		"login":    "ログイン",
		"logout":   "ログアウト",
		"signup":   "アカウント作成",
		"email":    "メールアドレス",
		"password": "パスワード",
		"name":     "氏名",

		"required":         "必須項目です",
		"must_be_positive": "0より大きい値を入力してください",
		"out_of_range":     "値が範囲外です",

		"record_created":     "登録しました",
		"record_updated":     "更新しました",
		"record_deleted":     "削除しました",
		"delivery_recorded":  "送付記録を登録しました",
		"save_failed":        "保存に失敗しました",
		"update_failed":      "更新に失敗しました",
		"delete_failed":      "削除に失敗しました",
		"login_failed":       "メールアドレスまたはパスワードが正しくありません",
		"email_exists":       "このメールアドレスは既に登録されています",
		"forbidden":          "この操作を行う権限がありません",

		"code":            "コード",
		"status":          "ステータス",
		"customer":        "得意先",
		"project":         "案件",
		"quote_number":    "見積番号",
		"order_number":    "受注番号",
		"invoice_number":  "請求書番号",
		"delivery_number": "納品書番号",
		"issue_date":      "発行日",
		"expiry_date":     "有効期限",
		"order_date":      "受注日",
		"due_date":        "支払期限",
		"payment_date":    "入金日",
		"delivery_date":   "納品日",
		"start_date":      "開始日",
		"end_date":        "終了日",
		"subtotal":        "小計",
		"tax":             "消費税",
		"total":           "合計",
		"total_amount":    "受注金額",
		"items":           "明細",
		"item_name":       "品目",
		"description":     "摘要",
		"quantity":        "数量",
		"unit_price":      "単価",
		"amount":          "金額",
		"add_item":        "明細を追加",
		"notes":           "備考",
		"name_kana":       "フリガナ",
		"postal_code":     "郵便番号",
		"address":         "住所",
		"phone":           "電話番号",
		"contact_person":  "担当者",
		"recipient_email": "送付先メールアドレス",
		"delivery_method": "送付方法",
		"delivered_at":    "送付日",
		"record_delivery": "送付を記録",
		"admin":           "管理",
		"users":           "ユーザー",
		"profile":         "プロファイル",

		"method_email": "メール",
		"method_post":  "郵送",
		"method_fax":   "FAX",
		"method_hand":  "手渡し",

		"active":     "進行中",
		"completed":  "完了",
		"canceled":   "中止",
		"draft":      "下書き",
		"sent":       "送付済み",
		"accepted":   "受注",
		"rejected":   "失注",
		"pending":    "未着手",
		"processing": "処理中",
		"paid":       "入金済み",
		"overdue":    "期限超過",
	},
	"en": {
		"app_name":       "Integrated Sales Management",
		"dashboard":      "Dashboard",
		"customers":      "Customers",
		"suppliers":      "Suppliers",
		"projects":       "Projects",
		"quotes":         "Quotes",
		"sales_orders":   "Sales Orders",
		"invoices":       "Invoices",
		"delivery_notes": "Delivery Notes",
		"delivery_logs":  "Delivery Logs",

		"new":            "New",
		"edit":           "Edit",
		"delete":         "Delete",
		"save":           "Save",
		"cancel":         "Cancel",
		"back":           "Back",
		"search":         "Search",
		"loading":        "Loading...",
		"no_results":     "No matching records found",
		"empty_list":     "No records yet",
		"confirm_delete": "Delete this record? This cannot be undone.",

		"login":    "Log in",
		"logout":   "Log out",
		"signup":   "Sign up",
		"email":    "Email",
		"password": "Password",
		"name":     "Name",

		"required":         "Required",
		"must_be_positive": "Must be greater than zero",
		"out_of_range":     "Out of range",

		"record_created":     "Record created",
		"record_updated":     "Record updated",
		"record_deleted":     "Record deleted",
		"delivery_recorded":  "Delivery recorded",
		"save_failed":        "Failed to save",
		"update_failed":      "Failed to update",
		"delete_failed":      "Failed to delete",
		"login_failed":       "Invalid email or password",
		"email_exists":       "Email already registered",
		"forbidden":          "You are not allowed to perform this action",

		"code":            "Code",
		"status":          "Status",
		"customer":        "Customer",
		"project":         "Project",
		"quote_number":    "Quote No.",
		"order_number":    "Order No.",
		"invoice_number":  "Invoice No.",
		"delivery_number": "Delivery No.",
		"issue_date":      "Issue date",
		"expiry_date":     "Expiry date",
		"order_date":      "Order date",
		"due_date":        "Due date",
		"payment_date":    "Payment date",
		"delivery_date":   "Delivery date",
		"start_date":      "Start date",
		"end_date":        "End date",
		"subtotal":        "Subtotal",
		"tax":             "Tax",
		"total":           "Total",
		"total_amount":    "Order amount",
		"items":           "Line items",
		"item_name":       "Item",
		"description":     "Description",
		"quantity":        "Qty",
		"unit_price":      "Unit price",
		"amount":          "Amount",
		"add_item":        "Add line",
		"notes":           "Notes",
		"name_kana":       "Name (kana)",
		"postal_code":     "Postal code",
		"address":         "Address",
		"phone":           "Phone",
		"contact_person":  "Contact person",
		"recipient_email": "Recipient email",
		"delivery_method": "Delivery method",
		"delivered_at":    "Delivered at",
		"record_delivery": "Record delivery",
		"admin":           "Admin",
		"users":           "Users",
		"profile":         "Profile",

		"method_email": "Email",
		"method_post":  "Post",
		"method_fax":   "Fax",
		"method_hand":  "Hand delivery",

		"active":     "Active",
		"completed":  "Completed",
		"canceled":   "Canceled",
		"draft":      "Draft",
		"sent":       "Sent",
		"accepted":   "Accepted",
		"rejected":   "Rejected",
		"pending":    "Pending",
		"processing": "Processing",
		"paid":       "Paid",
		"overdue":    "Overdue",
	},
}
