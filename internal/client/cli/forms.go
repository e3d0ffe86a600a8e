package cli

import (
	"bufio"
	"io"

	"github.com/dmitrijs2005/crudkeeper/internal/client/models"
	"github.com/dmitrijs2005/crudkeeper/internal/common"
)

// form prompts for every field of T, starting from cur.
type form[T models.Record] func(r *bufio.Reader, w io.Writer, cur T) (T, error)

func unicornForm(r *bufio.Reader, w io.Writer, cur models.Unicorn) (models.Unicorn, error) {
	var err error
	out := cur
	bad := map[string]string{}

	if out.Name, err = GetWithDefault(r, "Name", cur.Name, w); err != nil {
		return cur, err
	}
	if out.Color, err = GetWithDefault(r, "Color", cur.Color, w); err != nil {
		return cur, err
	}
	if out.Age, err = GetNumber(r, "Age (0-1000)", cur.Age, w, "age", bad); err != nil {
		return cur, err
	}
	if out.Power, err = GetWithDefault(r, "Power", cur.Power, w); err != nil {
		return cur, err
	}
	if len(bad) > 0 {
		return cur, common.NewValidation("unicorn.form", bad)
	}
	return out, nil
}

func productForm(r *bufio.Reader, w io.Writer, cur models.Product) (models.Product, error) {
	var err error
	out := cur
	bad := map[string]string{}

	if out.Name, err = GetWithDefault(r, "Name", cur.Name, w); err != nil {
		return cur, err
	}
	if out.Price, err = GetNumber(r, "Price", cur.Price, w, "price", bad); err != nil {
		return cur, err
	}
	if out.Stock, err = GetNumber(r, "Stock", cur.Stock, w, "stock", bad); err != nil {
		return cur, err
	}
	if len(bad) > 0 {
		return cur, common.NewValidation("product.form", bad)
	}
	return out, nil
}
