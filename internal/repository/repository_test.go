package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// The constructors return the interfaces, so a repo missing a method fails
// to compile right here. DB passthrough is asserted for the repos the
// services open transactions on.
func TestRepositoriesExposeDB(t *testing.T) {
	assert.Nil(t, NewProductRepository(nil).DB())
	assert.Nil(t, NewSaleRepository(nil).DB())
	assert.Nil(t, NewPurchaseOrderRepository(nil).DB())
}
