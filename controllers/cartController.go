package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/linebygizia/gizia-api/initializers"
	"github.com/linebygizia/gizia-api/store"
)

const (
	SessionCookie    = "gizia_session"
	sessionCookieTTL = 30 * 24 * 60 * 60
)

var clientPersister store.Persister

// InitClientStore selects where session carts and favorites live: the
// database when one is connected, process memory otherwise.
func InitClientStore() {
	if initializers.DemoMode() {
		clientPersister = store.NewMemoryPersister()
		return
	}
	clientPersister = store.NewGormPersister(initializers.DB)
}

// SetClientPersister overrides the persister. Intended for tests.
func SetClientPersister(p store.Persister) {
	clientPersister = p
}

// sessionKey returns the caller's session id, minting a cookie on first
// contact.
func sessionKey(ctx *gin.Context) string {
	if id, err := ctx.Cookie(SessionCookie); err == nil && id != "" {
		return id
	}
	id := uuid.NewString()
	ctx.SetCookie(SessionCookie, id, sessionCookieTTL, "/", "", false, true)
	return id
}

func sessionCart(ctx *gin.Context) *store.Cart {
	return store.NewCart("cart:"+sessionKey(ctx), clientPersister)
}

func sessionFavorites(ctx *gin.Context) *store.Favorites {
	return store.NewFavorites("favorites:"+sessionKey(ctx), clientPersister)
}

func cartResponse(cart *store.Cart) gin.H {
	return gin.H{
		"items":      cart.Items(),
		"totalPrice": cart.TotalPrice(),
		"totalItems": cart.TotalItems(),
	}
}

func GetCart(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, cartResponse(sessionCart(ctx)))
}

func AddCartItem(ctx *gin.Context) {
	var item store.CartItem
	if err := ctx.ShouldBindJSON(&item); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}
	if item.ProductID == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "Missing productId")
		return
	}

	cart := sessionCart(ctx)
	if err := cart.AddItem(item); err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to save cart", err)
		return
	}
	ctx.JSON(http.StatusOK, cartResponse(cart))
}

type cartQuantityInput struct {
	ProductID int `json:"productId"`
	VariantID int `json:"variantId"`
	Quantity  int `json:"quantity"`
}

func UpdateCartItem(ctx *gin.Context) {
	var input cartQuantityInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	cart := sessionCart(ctx)
	if err := cart.UpdateQuantity(input.ProductID, input.VariantID, input.Quantity); err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to save cart", err)
		return
	}
	ctx.JSON(http.StatusOK, cartResponse(cart))
}

func RemoveCartItem(ctx *gin.Context) {
	productID, err := strconv.Atoi(ctx.Param("productId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse productId")
		return
	}
	variantID, _ := strconv.Atoi(ctx.Query("variantId"))

	cart := sessionCart(ctx)
	if err := cart.RemoveItem(productID, variantID); err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to save cart", err)
		return
	}
	ctx.JSON(http.StatusOK, cartResponse(cart))
}

func ClearCart(ctx *gin.Context) {
	cart := sessionCart(ctx)
	if err := cart.Clear(); err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to save cart", err)
		return
	}
	ctx.JSON(http.StatusOK, cartResponse(cart))
}

func favoritesResponse(favorites *store.Favorites) gin.H {
	return gin.H{
		"items": favorites.Items(),
		"count": favorites.Count(),
	}
}

func GetFavorites(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, favoritesResponse(sessionFavorites(ctx)))
}

func AddFavorite(ctx *gin.Context) {
	var item store.FavoriteItem
	if err := ctx.ShouldBindJSON(&item); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}
	if item.ProductID == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "Missing productId")
		return
	}

	favorites := sessionFavorites(ctx)
	if err := favorites.Add(item); err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to save favorites", err)
		return
	}
	ctx.JSON(http.StatusOK, favoritesResponse(favorites))
}

func RemoveFavorite(ctx *gin.Context) {
	productID, err := strconv.Atoi(ctx.Param("productId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse productId")
		return
	}

	favorites := sessionFavorites(ctx)
	if err := favorites.Remove(productID); err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to save favorites", err)
		return
	}
	ctx.JSON(http.StatusOK, favoritesResponse(favorites))
}

func ClearFavorites(ctx *gin.Context) {
	favorites := sessionFavorites(ctx)
	if err := favorites.Clear(); err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to save favorites", err)
		return
	}
	ctx.JSON(http.StatusOK, favoritesResponse(favorites))
}
