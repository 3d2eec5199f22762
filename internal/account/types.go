// Package account manages local user accounts and their gameplay statistics.
// It is the client-side half of the game: accounts live in a local document
// store, one account list plus a current-user snapshot, both rewritten in
// full on every mutation so they can never diverge.
package account

import (
	"time"

	"github.com/anhpng/luyende/internal/stats"
)

// UserAccount is one registered player.
type UserAccount struct {
	ID             string       `json:"id"`
	Username       string       `json:"username"`
	PasswordDigest int32        `json:"passwordDigest"`
	BirthDate      time.Time    `json:"birthDate"`
	Gender         string       `json:"gender"`
	CreatedAt      time.Time    `json:"createdAt"`
	Stats          *stats.Stats `json:"stats"`
	Settings       Settings     `json:"settings"`
}

// Settings holds per-user preferences.
type Settings struct {
	// Sound toggles effect sounds in the client.
	Sound bool `json:"sound"`

	// PreferredSubject is preselected when starting a game.
	PreferredSubject string `json:"preferredSubject"`

	// PreferredGrade is preselected when starting a game, 6-12.
	PreferredGrade int `json:"preferredGrade"`
}

// Result is the uniform outcome of account operations. Failures are values,
// never panics, so a UI flow can always render Message directly.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func failure(msg string) Result {
	return Result{Success: false, Message: msg}
}

func success(msg string) Result {
	return Result{Success: true, Message: msg}
}

// User-facing messages, in the player's language.
const (
	msgUsernameLength = "Tên đăng nhập phải dài từ 3 đến 20 ký tự"
	msgUsernameTaken  = "Tên đăng nhập đã tồn tại"
	msgUnderage       = "Bạn phải đủ 6 tuổi để đăng ký tài khoản"
	msgRegistered     = "Đăng ký thành công"
	msgLoggedIn       = "Đăng nhập thành công"
	msgLoggedOut      = "Đã đăng xuất"
	msgUserNotFound   = "Không tìm thấy tài khoản"
	msgWrongPassword  = "Mật khẩu không đúng"
	msgNotLoggedIn    = "Bạn chưa đăng nhập"
	msgAccountDeleted = "Đã xóa tài khoản"
	msgSettingsSaved  = "Đã lưu cài đặt"
	msgStorageFailure = "Không thể lưu dữ liệu, vui lòng thử lại"
)
