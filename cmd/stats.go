package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/anhpng/luyende/internal/account"
	"github.com/anhpng/luyende/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the current user's statistics and skill assessment",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		accounts := account.NewService(account.NewStoreStorage(st.DocumentRepo()), nil)
		cur := accounts.Current()
		if cur == nil {
			fmt.Println("Chưa có ai đăng nhập. Chạy 'luyende play' để bắt đầu.")
			return nil
		}

		s := cur.Stats
		fmt.Printf("Người dùng:     %s\n", cur.Username)
		fmt.Printf("Số ván đã chơi: %d\n", s.GamesPlayed)
		fmt.Printf("Điểm cao nhất:  %d\n", s.BestScore)
		fmt.Printf("Tổng điểm:      %d\n", s.TotalScore)
		fmt.Printf("Câu đã trả lời: %d (đúng %d)\n", s.QuestionsAnswered, s.CorrectAnswers)

		if len(s.SubjectOrder) > 0 {
			fmt.Println()
			fmt.Printf("%-16s  %8s  %8s  %8s\n", "Môn học", "Đã làm", "Đúng", "Tỷ lệ")
			fmt.Println(strings.Repeat("─", 48))
			for _, subject := range s.SubjectOrder {
				ss := s.Subjects[subject]
				if ss == nil || ss.Total == 0 {
					continue
				}
				pct := 100 * ss.Correct / ss.Total
				fmt.Printf("%-16s  %8d  %8d  %7d%%\n", subject, ss.Answered, ss.Correct, pct)
			}
		}

		fmt.Println()
		fmt.Printf("Đánh giá: %s (%d/100)\n", s.Assessment.Tier, s.Assessment.Overall)
		return nil
	},
}
