// internal/messages/keys.go
package messages

// Message keys constants
const (
	// Menu
	KeyStartGreeting = "start.greeting"
	KeyMenuCatalog   = "menu.catalog"
	KeyMenuCart      = "menu.cart"

	// Catalog
	KeyCatalogEmpty       = "catalog.empty"
	KeyCatalogPick        = "catalog.pick_category"
	KeyCategoryEmpty      = "catalog.category_empty"
	KeyCategoryHeader     = "catalog.category_header"
	KeyCategoryLine       = "catalog.category_line"
	KeyCategoryProductBtn = "catalog.product_button"
	KeyCategoriesBack     = "catalog.back_to_categories"

	// Product
	KeyProductNotFound    = "product.not_found"
	KeyProductCard        = "product.card"
	KeyProductReviewsHead = "product.reviews_header"
	KeyProductNoReviews   = "product.no_reviews"
	KeyProductReviewLine  = "product.review_line"
	KeyProductAddToCart   = "product.add_to_cart"
	KeyProductBack        = "product.back"

	// Cart
	KeyCartAskQuantity     = "cart.ask_quantity"
	KeyCartInvalidQuantity = "cart.invalid_quantity"
	KeyCartAdded           = "cart.added"
	KeyCartEmpty           = "cart.empty"
	KeyCartHeader          = "cart.header"
	KeyCartLine            = "cart.line"
	KeyCartTotal           = "cart.total"
	KeyCartCheckout        = "cart.checkout"
	KeyCartClear           = "cart.clear"
	KeyCartCleared         = "cart.cleared"

	// Checkout
	KeyCheckoutEmptyAlert     = "checkout.empty_alert"
	KeyCheckoutAskName        = "checkout.ask_name"
	KeyCheckoutNameShort      = "checkout.name_short"
	KeyCheckoutNameLong       = "checkout.name_long"
	KeyCheckoutAskPhone       = "checkout.ask_phone"
	KeyCheckoutPhoneInvalid   = "checkout.phone_invalid"
	KeyCheckoutPhoneLong      = "checkout.phone_long"
	KeyCheckoutAskAddress     = "checkout.ask_address"
	KeyCheckoutAddressShort   = "checkout.address_short"
	KeyCheckoutAddressLong    = "checkout.address_long"
	KeyCheckoutDetailsInvalid = "checkout.details_invalid"
	KeyCheckoutEmptyCart      = "checkout.empty_cart"
	KeyCheckoutOrderAccepted  = "checkout.order_accepted"

	// Admin
	KeyAdminOrderHeader      = "admin.order_header"
	KeyAdminOrderUser        = "admin.order_user"
	KeyAdminOrderName        = "admin.order_name"
	KeyAdminOrderPhone       = "admin.order_phone"
	KeyAdminOrderAddress     = "admin.order_address"
	KeyAdminOrderItems       = "admin.order_items"
	KeyAdminDeliveredButton  = "admin.delivered_button"
	KeyAdminForbidden        = "admin.forbidden"
	KeyAdminOrderNotFound    = "admin.order_not_found"
	KeyAdminMarkedDelivered  = "admin.marked_delivered"
	KeyAdminAlreadyDelivered = "admin.already_delivered"
	KeyAdminAcknowledged     = "admin.acknowledged"
	KeyAdminUnknownUsername  = "admin.unknown_username"

	// Delivery and review
	KeyDeliveryNotice      = "delivery.notice"
	KeyReviewStartButton   = "review.start_button"
	KeyReviewNothingToRate = "review.nothing_to_review"
	KeyReviewPickProduct   = "review.pick_product"
	KeyReviewNotEligible   = "review.not_eligible"
	KeyReviewPickRating    = "review.pick_rating"
	KeyReviewRatingButton  = "review.rating_button"
	KeyReviewAskText       = "review.ask_text"
	KeyReviewTextShort     = "review.text_short"
	KeyReviewTextLong      = "review.text_long"
	KeyReviewDuplicate     = "review.duplicate"
	KeyReviewSaved         = "review.saved"

	// Common
	KeyGenericError = "error.generic"
	KeyRateLimited  = "error.rate_limited"
)
