package repository_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	repository "github.com/debattle/engine/internal/adapters/repository"
	. "github.com/smartystreets/goconvey/convey"
)

type counter struct {
	N int `json:"n"`
}

func TestMemStore_GetSetList(t *testing.T) {
	Convey("Given an empty store", t, func() {
		ctx := context.Background()
		store := repository.NewMemStore()

		Convey("When a missing key is read", func() {
			var c counter
			err := store.Get(ctx, "users/missing", &c)

			Convey("Then it reports not found", func() {
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When documents are written under a prefix", func() {
			So(store.Set(ctx, "users/b", counter{N: 2}), ShouldBeNil)
			So(store.Set(ctx, "users/a", counter{N: 1}), ShouldBeNil)
			So(store.Set(ctx, "debates/x", counter{N: 9}), ShouldBeNil)

			Convey("Then Get round-trips them", func() {
				var c counter
				So(store.Get(ctx, "users/a", &c), ShouldBeNil)
				So(c.N, ShouldEqual, 1)
			})

			Convey("Then List visits only the prefix, in key order", func() {
				var keys []string
				err := store.List(ctx, "users/", func(key string, raw []byte) error {
					keys = append(keys, key)
					return nil
				})
				So(err, ShouldBeNil)
				So(keys, ShouldResemble, []string{"users/a", "users/b"})
			})
		})
	})
}

func TestMemStore_Update(t *testing.T) {
	Convey("Given a store holding two documents", t, func() {
		ctx := context.Background()
		store := repository.NewMemStore()
		So(store.Set(ctx, "users/a", counter{N: 1}), ShouldBeNil)
		So(store.Set(ctx, "users/b", counter{N: 1}), ShouldBeNil)

		Convey("When a transaction mutates both", func() {
			err := store.Update(ctx, func(tx repository.Tx) error {
				var a, b counter
				if err := tx.Get("users/a", &a); err != nil {
					return err
				}
				if err := tx.Get("users/b", &b); err != nil {
					return err
				}
				a.N++
				b.N += 10
				tx.Set("users/a", a)
				tx.Set("users/b", b)
				return nil
			})

			Convey("Then both writes land together", func() {
				So(err, ShouldBeNil)
				var a, b counter
				So(store.Get(ctx, "users/a", &a), ShouldBeNil)
				So(store.Get(ctx, "users/b", &b), ShouldBeNil)
				So(a.N, ShouldEqual, 2)
				So(b.N, ShouldEqual, 11)
			})
		})

		Convey("When the callback fails", func() {
			err := store.Update(ctx, func(tx repository.Tx) error {
				tx.Set("users/a", counter{N: 99})
				return errors.New("validation failed")
			})

			Convey("Then nothing is written", func() {
				So(err, ShouldNotBeNil)
				var a counter
				So(store.Get(ctx, "users/a", &a), ShouldBeNil)
				So(a.N, ShouldEqual, 1)
			})
		})

		Convey("When a foreign write lands between read and commit", func() {
			err := store.Update(ctx, func(tx repository.Tx) error {
				var a counter
				if err := tx.Get("users/a", &a); err != nil {
					return err
				}
				// Simulate a concurrent writer on the same document.
				So(store.Set(ctx, "users/a", counter{N: 50}), ShouldBeNil)
				a.N++
				tx.Set("users/a", a)
				return nil
			})

			Convey("Then the transaction is rejected with a conflict", func() {
				So(errors.Is(err, repository.ErrConflict), ShouldBeTrue)
				var a counter
				So(store.Get(ctx, "users/a", &a), ShouldBeNil)
				So(a.N, ShouldEqual, 50)
			})
		})

		Convey("When a transaction reads an absent key that then appears", func() {
			err := store.Update(ctx, func(tx repository.Tx) error {
				var c counter
				if err := tx.Get("users/new", &c); !errors.Is(err, repository.ErrNotFound) {
					return err
				}
				So(store.Set(ctx, "users/new", counter{N: 7}), ShouldBeNil)
				tx.Set("users/new", counter{N: 1})
				return nil
			})

			Convey("Then the concurrent create conflicts", func() {
				So(errors.Is(err, repository.ErrConflict), ShouldBeTrue)
			})
		})

		Convey("When a transaction reads its own staged write", func() {
			err := store.Update(ctx, func(tx repository.Tx) error {
				tx.Set("users/a", counter{N: 42})
				var a counter
				if err := tx.Get("users/a", &a); err != nil {
					return err
				}
				So(a.N, ShouldEqual, 42)
				return nil
			})
			So(err, ShouldBeNil)
		})
	})
}

func TestMemStore_ConcurrentUpdates(t *testing.T) {
	Convey("Given many goroutines incrementing one document with retries", t, func() {
		ctx := context.Background()
		store := repository.NewMemStore()
		So(store.Set(ctx, "users/hot", counter{N: 0}), ShouldBeNil)

		const goroutines = 16
		const increments = 25

		var wg sync.WaitGroup
		errCh := make(chan error, goroutines)
		for g := 0; g < goroutines; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < increments; i++ {
					for {
						err := store.Update(ctx, func(tx repository.Tx) error {
							var c counter
							if err := tx.Get("users/hot", &c); err != nil {
								return err
							}
							c.N++
							tx.Set("users/hot", c)
							return nil
						})
						if err == nil {
							break
						}
						if !errors.Is(err, repository.ErrConflict) {
							errCh <- fmt.Errorf("unexpected error: %w", err)
							return
						}
					}
				}
			}()
		}
		wg.Wait()
		close(errCh)

		Convey("Then no increment is lost", func() {
			for err := range errCh {
				So(err, ShouldBeNil)
			}
			var c counter
			So(store.Get(ctx, "users/hot", &c), ShouldBeNil)
			So(c.N, ShouldEqual, goroutines*increments)
		})
	})
}
