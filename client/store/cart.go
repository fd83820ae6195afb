package store

import (
	"context"

	"github.com/muhammadheryan/storefront/model"
)

func (s *Store) FetchCart(ctx context.Context) error {
	s.update(func(st *State) { st.Cart.Loading, st.Cart.Error = true, "" })

	cart, err := s.api.GetCart(ctx)
	if err != nil {
		s.update(func(st *State) { st.Cart.Loading, st.Cart.Error = false, message("fetch cart", err) })
		return err
	}
	s.update(func(st *State) {
		st.Cart.Items = cart.CartItems
		st.Cart.TotalPrice = cart.TotalPrice
		st.Cart.ItemCount = cart.ItemCount
		st.Cart.Loading = false
	})
	return nil
}

// AddToCart leaves the cart untouched until the refresh that follows a
// successful add.
func (s *Store) AddToCart(ctx context.Context, productID uint64, quantity int) error {
	s.update(func(st *State) { st.Cart.Loading, st.Cart.Error = true, "" })

	if err := s.api.AddToCart(ctx, productID, quantity); err != nil {
		s.update(func(st *State) { st.Cart.Loading, st.Cart.Error = false, message("add to cart", err) })
		return err
	}
	return s.FetchCart(ctx)
}

// UpdateCartItem applies the new quantity locally, then refreshes for totals.
func (s *Store) UpdateCartItem(ctx context.Context, itemID uint64, quantity int) error {
	s.update(func(st *State) { st.Cart.Loading, st.Cart.Error = true, "" })

	if err := s.api.UpdateCartItem(ctx, itemID, quantity); err != nil {
		s.update(func(st *State) { st.Cart.Loading, st.Cart.Error = false, message("update cart item", err) })
		return err
	}
	s.update(func(st *State) {
		for i := range st.Cart.Items {
			if st.Cart.Items[i].ID == itemID {
				st.Cart.Items[i].Quantity = quantity
			}
		}
	})
	return s.FetchCart(ctx)
}

// RemoveFromCart drops the item locally, then refreshes for totals.
func (s *Store) RemoveFromCart(ctx context.Context, itemID uint64) error {
	s.update(func(st *State) { st.Cart.Loading, st.Cart.Error = true, "" })

	if err := s.api.RemoveFromCart(ctx, itemID); err != nil {
		s.update(func(st *State) { st.Cart.Loading, st.Cart.Error = false, message("remove from cart", err) })
		return err
	}
	s.update(func(st *State) {
		items := st.Cart.Items[:0]
		for _, it := range st.Cart.Items {
			if it.ID != itemID {
				items = append(items, it)
			}
		}
		st.Cart.Items = items
	})
	return s.FetchCart(ctx)
}

func (s *Store) ClearCart(ctx context.Context) error {
	s.update(func(st *State) { st.Cart.Loading, st.Cart.Error = true, "" })

	if err := s.api.ClearCart(ctx); err != nil {
		s.update(func(st *State) { st.Cart.Loading, st.Cart.Error = false, message("clear cart", err) })
		return err
	}
	s.update(func(st *State) {
		st.Cart.Items = nil
		st.Cart.TotalPrice = 0
		st.Cart.ItemCount = 0
		st.Cart.Loading = false
	})
	return nil
}

// Checkout empties the local cart and keeps the placed order.
func (s *Store) Checkout(ctx context.Context) (*model.CheckoutResponse, error) {
	s.update(func(st *State) { st.Cart.Loading, st.Cart.Error = true, "" })

	order, err := s.api.Checkout(ctx)
	if err != nil {
		s.update(func(st *State) { st.Cart.Loading, st.Cart.Error = false, message("checkout", err) })
		return nil, err
	}
	s.update(func(st *State) {
		st.Cart.Items = nil
		st.Cart.TotalPrice = 0
		st.Cart.ItemCount = 0
		st.Cart.LastOrder = order
		st.Cart.Loading = false
	})
	return order, nil
}
