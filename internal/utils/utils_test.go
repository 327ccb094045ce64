// internal/utils/utils_test.go
package utils

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestFormatMoney(t *testing.T) {
	cases := map[int64]string{
		0:       "0 so‘m",
		999:     "999 so‘m",
		60000:   "60 000 so‘m",
		170000:  "170 000 so‘m",
		1234567: "1 234 567 so‘m",
	}
	for amount, want := range cases {
		assert.Equal(t, want, FormatMoney(amount))
	}
	assert.Equal(t, "-1 000", GroupThousands(-1000))
}

func TestAdminJWTRoundTrip(t *testing.T) {
	SetJWTSecret("test-secret")

	token, err := GenerateAdminJWT(42, 1)
	require.NoError(t, err)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.Equal(t, "42", claims.Subject)

	SetJWTSecret("other-secret")
	_, err = ValidateJWT(token)
	assert.Error(t, err)
}

func TestExpiredJWT(t *testing.T) {
	SetJWTSecret("test-secret")
	token, err := GenerateAdminJWT(42, -1)
	require.NoError(t, err)

	_, err = ValidateJWT(token)
	assert.Error(t, err)
}

type nameInput struct {
	FullName string `validate:"trimmed_min=2,max=100"`
}

func TestTrimmedMin(t *testing.T) {
	assert.NoError(t, ValidateStruct(nameInput{FullName: "Al"}))
	assert.NoError(t, ValidateStruct(nameInput{FullName: "Ой"}))
	assert.Error(t, ValidateStruct(nameInput{FullName: " A "}))

	err := ValidateStruct(nameInput{FullName: "A"})
	errs := GetValidationErrors(err)
	require.Len(t, errs, 1)
	assert.Equal(t, "fullname", errs[0].Field)
	assert.Equal(t, "trimmed_min", errs[0].Tag)
}

func TestFailedOn(t *testing.T) {
	long := ValidateStruct(nameInput{FullName: strings.Repeat("a", 101)})
	assert.True(t, FailedOn(long, "max"))
	assert.False(t, FailedOn(long, "trimmed_min"))

	short := ValidateStruct(nameInput{FullName: "A"})
	assert.True(t, FailedOn(short, "trimmed_min"))
	assert.False(t, FailedOn(short, "max"))

	assert.False(t, FailedOn(nil, "max"))
	assert.False(t, FailedOn(errors.New("boom"), "max"))
}

func TestKeyedLimiter(t *testing.T) {
	l := NewKeyedLimiter[int64](rate.Every(time.Hour), 2)

	assert.True(t, l.Allow(1))
	assert.True(t, l.Allow(1))
	assert.False(t, l.Allow(1))
	assert.True(t, l.Allow(2))
	assert.Equal(t, 2, l.Len())

	l.Sweep(time.Now().Add(time.Hour))
	assert.Equal(t, 0, l.Len())
}

func TestGetListParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for query, want := range map[string]int{"": 30, "?limit=5": 5, "?limit=500": 30, "?limit=abc": 30, "?limit=0": 30} {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/"+query, nil)
		assert.Equal(t, want, GetListParams(c, 30).Limit, query)
	}
}

func TestGenerateWebhookSecret(t *testing.T) {
	a, err := GenerateWebhookSecret()
	require.NoError(t, err)
	b, err := GenerateWebhookSecret()
	require.NoError(t, err)
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}
