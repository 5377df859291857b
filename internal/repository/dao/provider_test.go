//go:build unit

package dao

import (
	"context"
	"testing"

	"gitee.com/flycash/mail-delivery-platform/internal/pkg/secret"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newProviderDAOForTest(t *testing.T) (ProviderDAO, sqlmock.Sqlmock, *secret.Cipher) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	cipher := secret.NewCipher("test-encrypt-key")
	return NewProviderDAO(gormDB, cipher), mock, cipher
}

func TestProviderDAO_CreateEncryptsSecret(t *testing.T) {
	t.Parallel()

	d, mock, cipher := newProviderDAOForTest(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO .providers.").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	created, err := d.Create(context.Background(), Provider{
		Name:          "sendgrid",
		Code:          "sendgrid",
		Transport:     "API",
		SenderAddress: "noreply@example.com",
		Endpoint:      "https://api.sendgrid.com/v3/mail/send",
		APIKey:        "key",
		APISecret:     "super-secret",
		MaxPerHour:    100,
		MaxPerDay:     1000,
		Status:        "ACTIVE",
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	// 落库与返回值里都只有密文
	assert.NotEqual(t, "super-secret", created.APISecret)
	plaintext, err := cipher.Decrypt(created.APISecret)
	require.NoError(t, err)
	assert.Equal(t, "super-secret", plaintext)
}

func TestProviderDAO_FindByIDKeepsCiphertext(t *testing.T) {
	t.Parallel()

	d, mock, cipher := newProviderDAOForTest(t)

	encrypted, err := cipher.Encrypt("super-secret")
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"id", "name", "transport", "api_secret", "status"}).
		AddRow(1, "sendgrid", "API", encrypted, "ACTIVE")
	mock.ExpectQuery("SELECT .* FROM .providers. WHERE id = .*").WillReturnRows(rows)

	found, err := d.FindByID(context.Background(), 1)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	// 读路径不解密
	assert.Equal(t, encrypted, found.APISecret)
}

func TestProviderDAO_UpdateHealth(t *testing.T) {
	t.Parallel()

	d, mock, _ := newProviderDAOForTest(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE .providers. SET .*total_sent.*total_sent. \\+ 1.*").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	require.NoError(t, d.UpdateHealth(context.Background(), 1, true))

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE .providers. SET .*total_failed.*total_failed. \\+ 1.*").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	require.NoError(t, d.UpdateHealth(context.Background(), 1, false))

	require.NoError(t, mock.ExpectationsWereMet())
}
