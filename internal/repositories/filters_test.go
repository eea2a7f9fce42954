package repositories

import (
	"errors"
	"testing"

	"toy_store_backend/internal/models"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildWhere(t *testing.T) {
	where, args := buildWhere(nil, 1)
	assert.Empty(t, where)
	assert.Empty(t, args)

	name, email := "João Silva", "joao.silva@example.com"
	where, args = buildWhere(ClientFilter{FullName: &name, Email: &email}.Predicates(), 1)
	assert.Equal(t, " WHERE full_name = $1 AND email = $2", where)
	assert.Equal(t, []interface{}{name, email}, args)
}

func TestSaleFilterPredicates(t *testing.T) {
	clientID := int64(3)
	day, err := models.ParseDate("2024-03-01")
	require.NoError(t, err)

	preds := SaleFilter{ClientID: &clientID, SaleDate: &day}.Predicates()
	require.Len(t, preds, 2)
	assert.Equal(t, "client_id", preds[0].Column)
	assert.Equal(t, "sale_date", preds[1].Column)

	where, _ := buildWhere(preds, 3)
	assert.Equal(t, " WHERE client_id = $3 AND sale_date = $4", where)
}

func TestBuildLimit(t *testing.T) {
	clause, args := buildLimit(Page{Number: 3, Size: 10}, 2)
	assert.Equal(t, " LIMIT $2 OFFSET $3", clause)
	assert.Equal(t, []interface{}{10, 20}, args)

	clause, args = buildLimit(Page{}, 1)
	assert.Empty(t, clause)
	assert.Nil(t, args)
}

func TestWrapWriteErrorMapsConstraints(t *testing.T) {
	err := wrapWriteError(&pq.Error{Code: "23505", Constraint: "clients_email_key"}, "creating client")
	assert.True(t, errors.Is(err, ErrDuplicateKey))
	var cerr *ConstraintError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "clients_email_key", cerr.Constraint)

	err = wrapWriteError(&pq.Error{Code: "23503", Constraint: "sales_client_id_fkey"}, "creating sale")
	assert.True(t, errors.Is(err, ErrForeignKey))

	err = wrapWriteError(errors.New("connection reset"), "creating sale")
	assert.True(t, errors.Is(err, ErrDatabaseError))
}
