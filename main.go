package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"marketplace-client-sample/api"
	"marketplace-client-sample/helper"
)

var (
	products *api.ProductClient
	tx       *api.TransactionClient
	users    *api.UserClient
	session  helper.Session
	cartPath string
)

func main() {
	// .env is optional; deployments set the environment directly
	godotenv.Load()

	productURL := helper.GetEnv("PRODUCT_API_URL", "http://localhost:8081")
	txURL := helper.GetEnv("TRANSACTION_API_URL", "http://localhost:8082")
	userURL := helper.GetEnv("USER_API_URL", "http://localhost:8083")
	token := os.Getenv("AUTH_TOKEN")
	cartPath = helper.GetEnv("CART_FILE", "cart.json")

	if token != "" {
		s, err := helper.SessionFromToken(token)
		if err != nil {
			log.Fatal("invalid AUTH_TOKEN:", err)
		}
		session = s
	}

	products = api.NewProductClient(productURL, token)
	tx = api.NewTransactionClient(txURL, token)
	users = api.NewUserClient(userURL, token)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	if err := dispatch(context.Background(), os.Args[1], os.Args[2:]); err != nil {
		log.Fatal(err)
	}
}

func usage() {
	log.Println(`usage: marketplace-client <command> [args]

catalog:
  products [keyword]               list or search products
  product <id>                     show a product and its variants
  hot-deals                        list hot deals

cart:
  cart                             show the cart
  cart-add <productId> <qty> [sku] add a product (optionally a variant) to the cart
  cart-qty <index> <qty>           change a line's quantity
  cart-rm <index>                  remove a line
  checkout                         place an order from the cart
  buy-now <productId> <qty> [sku]  place an order for one product directly

orders (buyer):
  orders [status] [page]           order history
  order <id>                       order detail
  cancel <orderId>                 cancel an order

orders (seller):
  seller-orders [status] [page]    incoming orders
  upload-proof <orderId> <type> <file> [note]

refunds:
  refunds                          my refund requests
  refund-create <orderId> <reason...>
  refund-review                    refunds against my sales
  refund-approve <refundId>
  refund-reject <refundId> <reason...>
  refund-process <refundId>

disputes:
  disputes                         my disputes
  dispute-create <orderId> <issueType> <description...>
  dispute-admin                    all disputes (admin)
  dispute-resolve <disputeId> <status> [autoRefund]`)
}
