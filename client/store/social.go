package store

import (
	"context"
	"math"

	"github.com/muhammadheryan/storefront/model"
)

// wishlist

func (s *Store) FetchWishlist(ctx context.Context) error {
	s.update(func(st *State) { st.Wishlist.Loading, st.Wishlist.Error = true, "" })

	items, err := s.api.GetWishlist(ctx)
	if err != nil {
		s.update(func(st *State) { st.Wishlist.Loading, st.Wishlist.Error = false, message("fetch wishlist", err) })
		return err
	}
	s.update(func(st *State) {
		st.Wishlist.Items = items
		st.Wishlist.Loading = false
	})
	return nil
}

func (s *Store) AddToWishlist(ctx context.Context, productID uint64) error {
	s.update(func(st *State) { st.Wishlist.Loading, st.Wishlist.Error = true, "" })

	if _, err := s.api.AddToWishlist(ctx, productID); err != nil {
		s.update(func(st *State) { st.Wishlist.Loading, st.Wishlist.Error = false, message("add to wishlist", err) })
		return err
	}
	return s.FetchWishlist(ctx)
}

func (s *Store) RemoveFromWishlist(ctx context.Context, productID uint64) error {
	s.update(func(st *State) { st.Wishlist.Loading, st.Wishlist.Error = true, "" })

	if err := s.api.RemoveFromWishlist(ctx, productID); err != nil {
		s.update(func(st *State) { st.Wishlist.Loading, st.Wishlist.Error = false, message("remove from wishlist", err) })
		return err
	}
	s.update(func(st *State) {
		items := st.Wishlist.Items[:0]
		for _, it := range st.Wishlist.Items {
			if it.ProductID != productID {
				items = append(items, it)
			}
		}
		st.Wishlist.Items = items
		st.Wishlist.Loading = false
	})
	return nil
}

// reviews

func (s *Store) FetchReviews(ctx context.Context, productID uint64) error {
	s.update(func(st *State) { st.Reviews.Loading, st.Reviews.Error = true, "" })

	res, err := s.api.ListReviews(ctx, productID)
	if err != nil {
		s.update(func(st *State) { st.Reviews.Loading, st.Reviews.Error = false, message("fetch reviews", err) })
		return err
	}
	s.update(func(st *State) {
		st.Reviews.ProductID = productID
		st.Reviews.Reviews = res.Reviews
		st.Reviews.TotalReviews = res.TotalReviews
		st.Reviews.AverageRating = res.AverageRating
		st.Reviews.Loading = false
	})
	return nil
}

func (s *Store) FetchMyReviews(ctx context.Context) error {
	items, err := s.api.MyReviews(ctx)
	if err != nil {
		s.update(func(st *State) { st.Reviews.Error = message("fetch my reviews", err) })
		return err
	}
	s.update(func(st *State) { st.Reviews.MyReviews = items })
	return nil
}

func (s *Store) CreateReview(ctx context.Context, productID uint64, req *model.ReviewRequest) (*model.Review, error) {
	s.update(func(st *State) { st.Reviews.Loading, st.Reviews.Error = true, "" })

	review, err := s.api.CreateReview(ctx, productID, req)
	if err != nil {
		s.update(func(st *State) { st.Reviews.Loading, st.Reviews.Error = false, message("create review", err) })
		return nil, err
	}
	s.update(func(st *State) {
		if st.Reviews.ProductID == productID {
			st.Reviews.Reviews = append(st.Reviews.Reviews, *review)
			st.Reviews.TotalReviews = len(st.Reviews.Reviews)
			st.Reviews.AverageRating = averageRating(st.Reviews.Reviews)
		}
		st.Reviews.MyReviews = append(st.Reviews.MyReviews, *review)
		st.Reviews.Loading = false
	})
	return review, nil
}

func (s *Store) UpdateReview(ctx context.Context, reviewID uint64, req *model.ReviewRequest) (*model.Review, error) {
	review, err := s.api.UpdateReview(ctx, reviewID, req)
	if err != nil {
		s.update(func(st *State) { st.Reviews.Error = message("update review", err) })
		return nil, err
	}
	s.update(func(st *State) {
		for i := range st.Reviews.Reviews {
			if st.Reviews.Reviews[i].ID == review.ID {
				st.Reviews.Reviews[i] = *review
			}
		}
		for i := range st.Reviews.MyReviews {
			if st.Reviews.MyReviews[i].ID == review.ID {
				st.Reviews.MyReviews[i] = *review
			}
		}
		st.Reviews.AverageRating = averageRating(st.Reviews.Reviews)
	})
	return review, nil
}

func (s *Store) DeleteReview(ctx context.Context, reviewID uint64) error {
	if err := s.api.DeleteReview(ctx, reviewID); err != nil {
		s.update(func(st *State) { st.Reviews.Error = message("delete review", err) })
		return err
	}
	s.update(func(st *State) {
		st.Reviews.Reviews = dropReview(st.Reviews.Reviews, reviewID)
		st.Reviews.MyReviews = dropReview(st.Reviews.MyReviews, reviewID)
		st.Reviews.TotalReviews = len(st.Reviews.Reviews)
		st.Reviews.AverageRating = averageRating(st.Reviews.Reviews)
	})
	return nil
}

func dropReview(items []model.Review, id uint64) []model.Review {
	out := items[:0]
	for _, r := range items {
		if r.ID != id {
			out = append(out, r)
		}
	}
	return out
}

// averageRating rounds to two decimals like the server does.
func averageRating(items []model.Review) float64 {
	if len(items) == 0 {
		return 0
	}
	sum := 0
	for _, r := range items {
		sum += r.Rating
	}
	avg := float64(sum) / float64(len(items))
	return math.Round(avg*100) / 100
}
