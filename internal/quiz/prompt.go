package quiz

import (
	"fmt"
	"strings"
)

const generationSystemPrompt = `Bạn là giáo viên trung học giàu kinh nghiệm, chuyên soạn câu hỏi trắc nghiệm theo chương trình của Bộ Giáo dục và Đào tạo Việt Nam.

Quy tắc:
- Mỗi câu hỏi có đúng 4 lựa chọn, ghi dưới dạng "A. ...", "B. ...", "C. ...", "D. ...".
- Đáp án đúng phải phân bố đều giữa A, B, C và D.
- Nội dung phù hợp với khối lớp được yêu cầu, rõ ràng và tự chứa.
- Chỉ trả về MỘT đối tượng JSON theo đúng cấu trúc được yêu cầu, không kèm lời dẫn, không kèm giải thích.`

const explanationSystemPrompt = `Bạn là giáo viên trung học tận tâm. Hãy giải thích đáp án cho học sinh bằng tiếng Việt, ngắn gọn trong 2-3 câu, tập trung vào kiến thức cốt lõi giúp học sinh hiểu vì sao đáp án đúng.`

// BuildGenerationPrompt renders the user message asking for count questions
// of the given subject at the given grade. Deterministic for identical
// inputs, which keeps prompt tests reproducible.
func BuildGenerationPrompt(grade int, subject string, count int) string {
	var b strings.Builder

	if subject == SubjectAll {
		fmt.Fprintf(&b, "Môn học: tổng hợp (%s)\n", strings.Join(AllSubjects(), ", "))
	} else {
		fmt.Fprintf(&b, "Môn học: %s\n", SubjectName(subject))
	}
	fmt.Fprintf(&b, "Khối lớp: %d\n", grade)
	fmt.Fprintf(&b, "Số câu hỏi: %d\n", count)

	b.WriteString(`
Hãy tạo đúng số câu hỏi trắc nghiệm nêu trên và trả về một đối tượng JSON theo mẫu:
{"questions":[{"subject":"Toán","text":"...","options":["A. ...","B. ...","C. ...","D. ..."],"answer":"A"}]}`)

	return b.String()
}

// BuildExplanationPrompt renders the user message asking for a short
// explanation of the question. The learner's own answer is included only
// when userAnswer is non-empty.
func BuildExplanationPrompt(q Question, correctAnswer, userAnswer string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Câu hỏi: %s\n", q.Text)
	if len(q.Options) > 0 {
		b.WriteString("Các lựa chọn:\n")
		for _, opt := range q.Options {
			fmt.Fprintf(&b, "%s\n", opt)
		}
	}
	fmt.Fprintf(&b, "Đáp án đúng: %s\n", correctAnswer)

	if userAnswer != "" {
		if userAnswer == correctAnswer {
			fmt.Fprintf(&b, "Học sinh đã chọn: %s (chính xác)\n", userAnswer)
		} else {
			fmt.Fprintf(&b, "Học sinh đã chọn: %s (chưa chính xác)\n", userAnswer)
		}
	}

	b.WriteString("\nHãy giải thích trong 2-3 câu vì sao đáp án trên là đúng.")

	return b.String()
}
