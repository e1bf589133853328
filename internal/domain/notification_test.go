package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsValidNotificationType(t *testing.T) {
	t.Run("valid types", func(t *testing.T) {
		valid := []string{
			NotificationTypePackage,
			NotificationTypeOccurrence,
			NotificationTypeNotice,
			NotificationTypeGeneric,
		}
		for _, v := range valid {
			require.True(t, IsValidNotificationType(v), "expected valid type: %s", v)
		}
	})

	t.Run("invalid types", func(t *testing.T) {
		invalid := []string{"", "packagee", "noticex", "occurrence1"}
		for _, v := range invalid {
			require.False(t, IsValidNotificationType(v), "expected invalid type: %s", v)
		}
	})
}
