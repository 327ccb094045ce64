// internal/services/services_test.go
package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/javajoker/shopbot/internal/database"
	"github.com/javajoker/shopbot/internal/models"
)

const (
	userA int64 = 1001
	userB int64 = 1002
)

type StoreTestSuite struct {
	suite.Suite
	ctx     context.Context
	db      *gorm.DB
	clock   time.Time
	catalog *CatalogService
	carts   *CartService
	orders  *OrderService
	reviews *ReviewService

	cream models.Product
	soap  models.Product
}

func (suite *StoreTestSuite) SetupTest() {
	db, err := database.OpenInMemory()
	suite.Require().NoError(err)

	suite.ctx = context.Background()
	suite.db = db
	suite.clock = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	suite.reviews = NewReviewService(db).WithClock(func() time.Time {
		suite.clock = suite.clock.Add(time.Minute)
		return suite.clock
	})
	suite.catalog = NewCatalogService(db, suite.reviews)
	suite.carts = NewCartService(db)
	suite.orders = NewOrderService(db)

	suite.cream = models.Product{Name: "Namlantiruvchi krem", Category: "Yuz parvarishi", Price: 85000, Description: "Krem"}
	suite.soap = models.Product{Name: "Sovun", Category: "Tana parvarishi", Price: 12000}
	suite.Require().NoError(db.Create(&suite.cream).Error)
	suite.Require().NoError(db.Create(&suite.soap).Error)
}

func (suite *StoreTestSuite) TearDownTest() {
	database.Close(suite.db)
}

func (suite *StoreTestSuite) details() CheckoutDetails {
	return CheckoutDetails{FullName: "Ali", Phone: "+998901234567", Address: "Tashkent, st.1"}
}

// deliveredOrder places an order for user containing the given products and
// marks it delivered.
func (suite *StoreTestSuite) deliveredOrder(userID int64, products ...models.Product) *models.Order {
	for _, p := range products {
		suite.Require().NoError(suite.carts.AddItem(suite.ctx, userID, p.ID, 1))
	}
	order, err := suite.orders.CreateOrderFromCart(suite.ctx, userID, suite.details())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orders.SetOrderStatus(suite.ctx, order.ID, models.OrderStatusDelivered))
	return order
}

func (suite *StoreTestSuite) TestListCategoriesSorted() {
	suite.Require().NoError(suite.db.Create(&models.Product{Name: "Krem 2", Category: "Yuz parvarishi", Price: 1}).Error)

	categories, err := suite.catalog.ListCategories(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal([]string{"Tana parvarishi", "Yuz parvarishi"}, categories)
}

func (suite *StoreTestSuite) TestListProductsByCategoryNewestFirstAndCapped() {
	for i := 0; i < ProductDisplayLimit+5; i++ {
		suite.Require().NoError(suite.db.Create(&models.Product{Name: "Bulk", Category: "Bulk", Price: int64(i)}).Error)
	}

	products, err := suite.catalog.ListProductsByCategory(suite.ctx, "Bulk")
	suite.Require().NoError(err)
	suite.Len(products, ProductDisplayLimit)
	for i := 1; i < len(products); i++ {
		suite.Greater(products[i-1].ID, products[i].ID)
	}

	none, err := suite.catalog.ListProductsByCategory(suite.ctx, "Nothing")
	suite.Require().NoError(err)
	suite.Empty(none)
}

func (suite *StoreTestSuite) TestGetProduct() {
	p, err := suite.catalog.GetProduct(suite.ctx, suite.cream.ID)
	suite.Require().NoError(err)
	suite.Equal("Namlantiruvchi krem", p.Name)

	_, err = suite.catalog.GetProduct(suite.ctx, 9999)
	suite.ErrorIs(err, ErrNotFound)
}

func (suite *StoreTestSuite) TestSeedIfEmpty() {
	n, err := suite.catalog.SeedIfEmpty(suite.ctx, []models.Product{{Name: "x", Category: "y"}})
	suite.Require().NoError(err)
	suite.Zero(n, "catalog already has products")

	suite.Require().NoError(suite.db.Exec("DELETE FROM products").Error)
	seed, err := database.LoadSeedCatalog("")
	suite.Require().NoError(err)

	n, err = suite.catalog.SeedIfEmpty(suite.ctx, seed)
	suite.Require().NoError(err)
	suite.Equal(2, n)

	n, err = suite.catalog.SeedIfEmpty(suite.ctx, seed)
	suite.Require().NoError(err)
	suite.Zero(n)
}

// P1
func (suite *StoreTestSuite) TestAddItemAccumulates() {
	suite.Require().NoError(suite.carts.AddItem(suite.ctx, userA, suite.cream.ID, 2))
	suite.Require().NoError(suite.carts.AddItem(suite.ctx, userA, suite.cream.ID, 3))

	cart, err := suite.carts.GetCart(suite.ctx, userA)
	suite.Require().NoError(err)
	suite.Require().Len(cart.Lines, 1)
	suite.Equal(5, cart.Lines[0].Qty)
	suite.Equal(int64(5*85000), cart.Total())
}

func (suite *StoreTestSuite) TestAddItemBounds() {
	for _, qty := range []int{0, -1, MaxQuantity + 1} {
		err := suite.carts.AddItem(suite.ctx, userA, suite.cream.ID, qty)
		suite.ErrorIs(err, ErrInvalidInput, "qty %d", qty)
	}
	suite.NoError(suite.carts.AddItem(suite.ctx, userA, suite.cream.ID, MaxQuantity))

	err := suite.carts.AddItem(suite.ctx, userA, 9999, 1)
	suite.ErrorIs(err, ErrNotFound)
}

func (suite *StoreTestSuite) TestGetCartOrderAndIsolation() {
	suite.Require().NoError(suite.carts.AddItem(suite.ctx, userA, suite.cream.ID, 1))
	suite.Require().NoError(suite.carts.AddItem(suite.ctx, userA, suite.soap.ID, 4))
	suite.Require().NoError(suite.carts.AddItem(suite.ctx, userB, suite.soap.ID, 1))

	cart, err := suite.carts.GetCart(suite.ctx, userA)
	suite.Require().NoError(err)
	suite.Require().Len(cart.Lines, 2)
	suite.Equal(suite.soap.ID, cart.Lines[0].ProductID)
	suite.Equal(suite.cream.ID, cart.Lines[1].ProductID)
	suite.Equal(int64(85000+4*12000), cart.Total())

	suite.Require().NoError(suite.carts.ClearCart(suite.ctx, userA))
	suite.Require().NoError(suite.carts.ClearCart(suite.ctx, userA))

	cart, err = suite.carts.GetCart(suite.ctx, userA)
	suite.Require().NoError(err)
	suite.True(cart.IsEmpty())

	other, err := suite.carts.GetCart(suite.ctx, userB)
	suite.Require().NoError(err)
	suite.Len(other.Lines, 1)
}

// P2
func (suite *StoreTestSuite) TestCreateOrderFromEmptyCart() {
	_, err := suite.orders.CreateOrderFromCart(suite.ctx, userA, suite.details())
	suite.ErrorIs(err, ErrEmptyCart)

	var count int64
	suite.Require().NoError(suite.db.Model(&models.Order{}).Count(&count).Error)
	suite.Zero(count)
	suite.Require().NoError(suite.db.Model(&models.OrderItem{}).Count(&count).Error)
	suite.Zero(count)
}

func (suite *StoreTestSuite) TestCreateOrderRejectsShortDetails() {
	suite.Require().NoError(suite.carts.AddItem(suite.ctx, userA, suite.cream.ID, 1))

	_, err := suite.orders.CreateOrderFromCart(suite.ctx, userA, CheckoutDetails{FullName: "A", Phone: "+998901234567", Address: "Tashkent"})
	suite.ErrorIs(err, ErrInvalidInput)

	cart, err := suite.carts.GetCart(suite.ctx, userA)
	suite.Require().NoError(err)
	suite.Len(cart.Lines, 1)
}

// Scenario A and P3
func (suite *StoreTestSuite) TestCreateOrderSnapshotsCart() {
	suite.Require().NoError(suite.carts.AddItem(suite.ctx, userA, suite.cream.ID, 2))
	before, err := suite.carts.GetCart(suite.ctx, userA)
	suite.Require().NoError(err)

	order, err := suite.orders.CreateOrderFromCart(suite.ctx, userA, suite.details())
	suite.Require().NoError(err)
	suite.Equal(models.OrderStatusNew, order.Status)

	cart, err := suite.carts.GetCart(suite.ctx, userA)
	suite.Require().NoError(err)
	suite.True(cart.IsEmpty())

	suite.Require().NoError(suite.db.Model(&models.Product{}).Where("id = ?", suite.cream.ID).Update("price", 1).Error)

	stored, err := suite.orders.GetOrder(suite.ctx, order.ID)
	suite.Require().NoError(err)
	suite.Equal("Ali", stored.FullName)
	suite.Equal("+998901234567", stored.Phone)
	suite.Equal("Tashkent, st.1", stored.Address)
	suite.Equal(models.OrderStatusNew, stored.Status)
	suite.Require().Len(stored.Items, 1)
	suite.Equal(suite.cream.ID, stored.Items[0].ProductID)
	suite.Equal(int64(85000), stored.Items[0].Price)
	suite.Equal(2, stored.Items[0].Qty)
	suite.Equal(int64(170000), stored.Total())
	suite.Equal(before.Total(), stored.Total())

	items, err := suite.orders.GetOrderItems(suite.ctx, order.ID)
	suite.Require().NoError(err)
	suite.Len(items, 1)
}

func (suite *StoreTestSuite) TestGetOrderNotFound() {
	_, err := suite.orders.GetOrder(suite.ctx, 424242)
	suite.ErrorIs(err, ErrNotFound)
}

// P6
func (suite *StoreTestSuite) TestSetOrderStatusOneWay() {
	suite.Require().NoError(suite.carts.AddItem(suite.ctx, userA, suite.cream.ID, 1))
	order, err := suite.orders.CreateOrderFromCart(suite.ctx, userA, suite.details())
	suite.Require().NoError(err)

	suite.ErrorIs(suite.orders.SetOrderStatus(suite.ctx, order.ID, models.OrderStatusNew), ErrInvalidTransition)
	suite.ErrorIs(suite.orders.SetOrderStatus(suite.ctx, order.ID, "CANCELLED"), ErrInvalidTransition)

	suite.Require().NoError(suite.orders.SetOrderStatus(suite.ctx, order.ID, models.OrderStatusDelivered))
	suite.ErrorIs(suite.orders.SetOrderStatus(suite.ctx, order.ID, models.OrderStatusDelivered), ErrInvalidTransition)
	suite.ErrorIs(suite.orders.SetOrderStatus(suite.ctx, order.ID, models.OrderStatusNew), ErrInvalidTransition)

	stored, err := suite.orders.GetOrder(suite.ctx, order.ID)
	suite.Require().NoError(err)
	suite.Equal(models.OrderStatusDelivered, stored.Status)

	suite.ErrorIs(suite.orders.SetOrderStatus(suite.ctx, 999, models.OrderStatusDelivered), ErrNotFound)
}

// Scenario B
func (suite *StoreTestSuite) TestReviewAfterDelivery() {
	order := suite.deliveredOrder(userA, suite.cream)

	eligible, err := suite.reviews.EligibleProducts(suite.ctx, userA, order.ID)
	suite.Require().NoError(err)
	suite.Equal([]models.ReviewableProduct{{ProductID: suite.cream.ID, Name: suite.cream.Name}}, eligible)

	review, err := suite.reviews.AddReview(suite.ctx, NewReview{UserID: userA, ProductID: suite.cream.ID, OrderID: order.ID, Rating: 5, Text: "Great"})
	suite.Require().NoError(err)
	suite.Equal(5, review.Rating)

	_, err = suite.reviews.AddReview(suite.ctx, NewReview{UserID: userA, ProductID: suite.cream.ID, OrderID: order.ID, Rating: 4, Text: "Again"})
	suite.ErrorIs(err, ErrDuplicateReview)

	reviews, err := suite.catalog.RecentReviews(suite.ctx, suite.cream.ID, ProductPageReviews)
	suite.Require().NoError(err)
	suite.Require().Len(reviews, 1)
	suite.Equal("Great", reviews[0].Text)
}

// P5
func (suite *StoreTestSuite) TestEligibleProductsGate() {
	suite.Require().NoError(suite.carts.AddItem(suite.ctx, userA, suite.cream.ID, 1))
	suite.Require().NoError(suite.carts.AddItem(suite.ctx, userA, suite.soap.ID, 1))
	order, err := suite.orders.CreateOrderFromCart(suite.ctx, userA, suite.details())
	suite.Require().NoError(err)

	eligible, err := suite.reviews.EligibleProducts(suite.ctx, userA, order.ID)
	suite.Require().NoError(err)
	suite.Empty(eligible, "order not delivered yet")

	suite.Require().NoError(suite.orders.SetOrderStatus(suite.ctx, order.ID, models.OrderStatusDelivered))

	eligible, err = suite.reviews.EligibleProducts(suite.ctx, userB, order.ID)
	suite.Require().NoError(err)
	suite.Empty(eligible, "order owned by someone else")

	eligible, err = suite.reviews.EligibleProducts(suite.ctx, userA, order.ID)
	suite.Require().NoError(err)
	suite.Require().Len(eligible, 2)
	suite.Equal(suite.soap.ID, eligible[0].ProductID)

	_, err = suite.reviews.AddReview(suite.ctx, NewReview{UserID: userA, ProductID: suite.soap.ID, OrderID: order.ID, Rating: 3, Text: "Okay"})
	suite.Require().NoError(err)

	eligible, err = suite.reviews.EligibleProducts(suite.ctx, userA, order.ID)
	suite.Require().NoError(err)
	suite.Equal([]models.ReviewableProduct{{ProductID: suite.cream.ID, Name: suite.cream.Name}}, eligible)

	ok, err := suite.reviews.IsEligible(suite.ctx, userA, order.ID, suite.soap.ID)
	suite.Require().NoError(err)
	suite.False(ok)
}

// I5: a review on one order blocks the same product in a later order.
func (suite *StoreTestSuite) TestReviewUniqueAcrossOrders() {
	first := suite.deliveredOrder(userA, suite.cream)
	_, err := suite.reviews.AddReview(suite.ctx, NewReview{UserID: userA, ProductID: suite.cream.ID, OrderID: first.ID, Rating: 5, Text: "Great"})
	suite.Require().NoError(err)

	second := suite.deliveredOrder(userA, suite.cream)
	eligible, err := suite.reviews.EligibleProducts(suite.ctx, userA, second.ID)
	suite.Require().NoError(err)
	suite.Empty(eligible)
}

func (suite *StoreTestSuite) TestAddReviewValidation() {
	order := suite.deliveredOrder(userA, suite.cream)
	base := NewReview{UserID: userA, ProductID: suite.cream.ID, OrderID: order.ID, Rating: 5, Text: "Great"}

	for _, rating := range []int{0, 6, -1} {
		req := base
		req.Rating = rating
		_, err := suite.reviews.AddReview(suite.ctx, req)
		suite.ErrorIs(err, ErrInvalidInput, "rating %d", rating)
	}

	req := base
	req.Text = "  ok  "
	_, err := suite.reviews.AddReview(suite.ctx, req)
	suite.ErrorIs(err, ErrInvalidInput)
}

// P4
func (suite *StoreTestSuite) TestConcurrentDuplicateReviews() {
	order := suite.deliveredOrder(userA, suite.cream)

	const attempts = 8
	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		successes  int
		duplicates int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := suite.reviews.AddReview(suite.ctx, NewReview{UserID: userA, ProductID: suite.cream.ID, OrderID: order.ID, Rating: 5, Text: "Great"})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, ErrDuplicateReview):
				duplicates++
			}
		}()
	}
	wg.Wait()

	suite.Equal(1, successes)
	suite.Equal(attempts-1, duplicates)

	var count int64
	suite.Require().NoError(suite.db.Model(&models.Review{}).Count(&count).Error)
	suite.Equal(int64(1), count)
}

func (suite *StoreTestSuite) TestReviewsForProductNewestFirst() {
	users := []int64{1, 2, 3, 4}
	for _, u := range users {
		order := suite.deliveredOrder(u, suite.cream)
		_, err := suite.reviews.AddReview(suite.ctx, NewReview{UserID: u, ProductID: suite.cream.ID, OrderID: order.ID, Rating: 4, Text: "Review from user"})
		suite.Require().NoError(err)
	}

	reviews, err := suite.reviews.ReviewsForProduct(suite.ctx, suite.cream.ID, ProductPageReviews)
	suite.Require().NoError(err)
	suite.Require().Len(reviews, ProductPageReviews)
	suite.Equal(int64(4), reviews[0].UserID)
	suite.Equal(int64(2), reviews[2].UserID)
}

func (suite *StoreTestSuite) TestReviewsWithSameTimestampAreStable() {
	at := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	reviews := NewReviewService(suite.db).WithClock(func() time.Time { return at })

	for _, u := range []int64{2, 3, 1} {
		order := suite.deliveredOrder(u, suite.cream)
		_, err := reviews.AddReview(suite.ctx, NewReview{UserID: u, ProductID: suite.cream.ID, OrderID: order.ID, Rating: 5, Text: "Same moment"})
		suite.Require().NoError(err)
	}

	for i := 0; i < 3; i++ {
		got, err := reviews.ReviewsForProduct(suite.ctx, suite.cream.ID, 10)
		suite.Require().NoError(err)
		suite.Require().Len(got, 3)
		suite.Equal([]int64{3, 2, 1}, []int64{got[0].UserID, got[1].UserID, got[2].UserID})
	}
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}
