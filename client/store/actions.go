package store

import (
	"context"

	"github.com/muhammadheryan/storefront/model"
)

// session

func (s *Store) Login(ctx context.Context, identifier, password string) error {
	s.update(func(st *State) { st.Session.Loading, st.Session.Error = true, "" })

	res, err := s.api.Login(ctx, identifier, password)
	if err != nil {
		s.update(func(st *State) { st.Session.Loading, st.Session.Error = false, message("login", err) })
		return err
	}
	s.update(func(st *State) {
		user := res.User
		st.Session.User = &user
		st.Session.Loading = false
	})
	return nil
}

// RestoreSession loads the user behind an existing session cookie.
func (s *Store) RestoreSession(ctx context.Context) error {
	user, err := s.api.Me(ctx)
	if err != nil {
		s.update(func(st *State) { st.Session.User = nil })
		return err
	}
	s.update(func(st *State) { st.Session.User = user })
	return nil
}

// Logout drops every user scoped slice once the server has ended the session.
func (s *Store) Logout(ctx context.Context) error {
	if err := s.api.Logout(ctx); err != nil {
		s.update(func(st *State) { st.Session.Error = message("logout", err) })
		return err
	}
	s.update(func(st *State) {
		st.Session = SessionState{}
		st.Cart = CartState{}
		st.Wishlist = WishlistState{}
		st.Reviews.MyReviews = nil
		st.Products.Mine = nil
	})
	return nil
}

// products

func (s *Store) FetchProducts(ctx context.Context, q model.ProductQuery) error {
	s.update(func(st *State) { st.Products.Loading, st.Products.Error = true, "" })

	res, err := s.api.ListProducts(ctx, q)
	if err != nil {
		s.update(func(st *State) { st.Products.Loading, st.Products.Error = false, message("fetch products", err) })
		return err
	}
	s.update(func(st *State) {
		st.Products.Items = res.Items
		st.Products.Meta = res.Meta
		st.Products.Loading = false
	})
	return nil
}

func (s *Store) FetchMyProducts(ctx context.Context) error {
	s.update(func(st *State) { st.Products.Loading, st.Products.Error = true, "" })

	items, err := s.api.MyProducts(ctx)
	if err != nil {
		s.update(func(st *State) { st.Products.Loading, st.Products.Error = false, message("fetch my products", err) })
		return err
	}
	s.update(func(st *State) {
		st.Products.Mine = items
		st.Products.Loading = false
	})
	return nil
}

func (s *Store) CreateProduct(ctx context.Context, req *model.ProductRequest) (*model.ProductEntity, error) {
	s.update(func(st *State) { st.Products.Loading, st.Products.Error = true, "" })

	product, err := s.api.CreateProduct(ctx, req)
	if err != nil {
		s.update(func(st *State) { st.Products.Loading, st.Products.Error = false, message("create product", err) })
		return nil, err
	}
	s.update(func(st *State) {
		st.Products.Items = upsertProduct(st.Products.Items, *product)
		st.Products.Mine = upsertProduct(st.Products.Mine, *product)
		st.Products.Loading = false
	})
	return product, nil
}

func (s *Store) UpdateProduct(ctx context.Context, id uint64, req *model.ProductRequest) (*model.ProductEntity, error) {
	s.update(func(st *State) { st.Products.Loading, st.Products.Error = true, "" })

	product, err := s.api.UpdateProduct(ctx, id, req)
	if err != nil {
		s.update(func(st *State) { st.Products.Loading, st.Products.Error = false, message("update product", err) })
		return nil, err
	}
	s.update(func(st *State) {
		st.Products.Items = replaceProduct(st.Products.Items, *product)
		st.Products.Mine = replaceProduct(st.Products.Mine, *product)
		st.Products.Loading = false
	})
	return product, nil
}

func (s *Store) DeleteProduct(ctx context.Context, id uint64) error {
	s.update(func(st *State) { st.Products.Loading, st.Products.Error = true, "" })

	if err := s.api.DeleteProduct(ctx, id); err != nil {
		s.update(func(st *State) { st.Products.Loading, st.Products.Error = false, message("delete product", err) })
		return err
	}
	s.update(func(st *State) {
		st.Products.Items = removeProduct(st.Products.Items, id)
		st.Products.Mine = removeProduct(st.Products.Mine, id)
		st.Products.Loading = false
	})
	return nil
}

func upsertProduct(items []model.ProductEntity, p model.ProductEntity) []model.ProductEntity {
	for i := range items {
		if items[i].ID == p.ID {
			items[i] = p
			return items
		}
	}
	return append(items, p)
}

func replaceProduct(items []model.ProductEntity, p model.ProductEntity) []model.ProductEntity {
	for i := range items {
		if items[i].ID == p.ID {
			items[i] = p
		}
	}
	return items
}

func removeProduct(items []model.ProductEntity, id uint64) []model.ProductEntity {
	out := items[:0]
	for _, p := range items {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}
