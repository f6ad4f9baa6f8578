package report

import (
	"testing"

	"github.com/IT-Nick/careerpath/internal/domain/model"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		user model.User
		want string
	}{
		{model.User{FirstName: "Jane", LastName: "Doe", Email: "x@example.com"}, "Jane Doe"},
		{model.User{FirstName: "Jane"}, "Jane"},
		{model.User{Email: "jane.doe@example.com"}, "Jane.Doe"},
		{model.User{Email: "JOHN_smith99x@example.com"}, "John_Smith99X"},
		{model.User{Email: "иван.петров@example.com"}, "Иван.Петров"},
		{model.User{}, "Student"},
	}

	for _, tt := range tests {
		if got := DisplayName(tt.user); got != tt.want {
			t.Errorf("DisplayName(%+v) = %q, want %q", tt.user, got, tt.want)
		}
	}
}
