package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"marketplace-client-sample/api"
	"marketplace-client-sample/cart"
	"marketplace-client-sample/checkout"
	"marketplace-client-sample/dispute"
	"marketplace-client-sample/helper"
	"marketplace-client-sample/model"
	"marketplace-client-sample/orders"
	"marketplace-client-sample/refund"
)

func dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "products":
		return productsCmd(ctx, args)
	case "product":
		return productCmd(ctx, args)
	case "hot-deals":
		return hotDealsCmd(ctx)
	case "cart":
		return cartCmd()
	case "cart-add":
		return cartAddCmd(ctx, args)
	case "cart-qty":
		return cartQtyCmd(args)
	case "cart-rm":
		return cartRemoveCmd(args)
	case "checkout":
		return checkoutCmd(ctx)
	case "buy-now":
		return buyNowCmd(ctx, args)
	case "orders":
		return ordersCmd(ctx, args)
	case "order":
		return orderCmd(ctx, args)
	case "cancel":
		return cancelCmd(ctx, args)
	case "seller-orders":
		return sellerOrdersCmd(ctx, args)
	case "upload-proof":
		return uploadProofCmd(ctx, args)
	case "refunds":
		return refundsCmd(ctx)
	case "refund-create":
		return refundCreateCmd(ctx, args)
	case "refund-review":
		return refundReviewCmd(ctx)
	case "refund-approve", "refund-reject", "refund-process":
		return refundActionCmd(ctx, cmd, args)
	case "disputes":
		return disputesCmd(ctx)
	case "dispute-create":
		return disputeCreateCmd(ctx, args)
	case "dispute-admin":
		return disputeAdminCmd(ctx)
	case "dispute-resolve":
		return disputeResolveCmd(ctx, args)
	default:
		usage()
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

func requireAuth() error {
	if !session.Authenticated() {
		return errors.New("AUTH_TOKEN is not set, sign in first")
	}
	return nil
}

func openCart() (*cart.Store, error) {
	return cart.Open(cartPath)
}

// confirm asks a y/N question on stdin.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func readLine(prompt string) string {
	fmt.Printf("%s: ", prompt)
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	return strings.TrimSpace(line)
}

// === catalog ===

func productsCmd(ctx context.Context, args []string) error {
	var page model.Page[model.Product]
	var err error
	if len(args) > 0 {
		page, err = products.SearchProducts(ctx, args[0], listOpts(args[1:]))
	} else {
		page, err = products.ListProducts(ctx, listOpts(nil))
	}
	if err != nil {
		return err
	}

	for _, p := range page.Content {
		fmt.Printf("%-24s  %-32s  %s\n", p.ID, p.Name, helper.FormatAmount(p.BasePrice, p.Currency))
	}
	fmt.Printf("page %d/%d, %d products\n", page.Number, page.TotalPages, page.TotalElements)
	return nil
}

func productCmd(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: product <id>")
	}

	p, err := products.GetProductByID(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s — %s (seller %s)\n", p.ID, p.Name, p.UserID)
	fmt.Println(p.Description)

	variants, err := products.GetVariantsByProduct(ctx, p.ID)
	if err != nil {
		return err
	}
	for _, v := range variants {
		fmt.Printf("  %-12s  %s  available=%d reserved=%d sold=%d\n",
			v.SKU, helper.FormatAmount(v.Price, p.Currency), v.AvailableQty, v.ReservedQty, v.SoldQty)
	}
	return nil
}

func hotDealsCmd(ctx context.Context) error {
	deals, err := products.GetHotDeals(ctx)
	if err != nil {
		return err
	}
	for _, p := range deals {
		fmt.Printf("%-24s  %-32s  %s\n", p.ID, p.Name, helper.FormatAmount(p.BasePrice, p.Currency))
	}
	return nil
}

// === cart ===

func cartCmd() error {
	store, err := openCart()
	if err != nil {
		return err
	}
	if store.Len() == 0 {
		fmt.Println("cart is empty")
		return nil
	}

	for i, item := range store.Items() {
		variant := item.Variant
		if variant == "" {
			variant = "-"
		}
		fmt.Printf("[%d] %-32s %-12s x%-3d %s\n", i, item.Name, variant, item.Quantity,
			helper.FormatAmount(item.Price*int64(item.Quantity), "VND"))
	}
	fmt.Println("total:", helper.FormatAmount(store.Total(), "VND"))
	return nil
}

func cartAddCmd(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: cart-add <productId> <qty> [sku]")
	}
	qty, err := strconv.Atoi(args[1])
	if err != nil {
		return errors.New("invalid quantity")
	}

	p, err := products.GetProductByID(ctx, args[0])
	if err != nil {
		return err
	}

	item := model.CartItem{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.BasePrice,
		Quantity:  qty,
		VariantData: &model.VariantSnapshot{
			SellerID: p.UserID,
		},
	}

	if len(args) > 2 {
		variants, err := products.GetVariantsByProduct(ctx, p.ID)
		if err != nil {
			return err
		}
		found := false
		for _, v := range variants {
			if v.SKU == args[2] {
				item.Price = v.Price
				item.Variant = v.SKU
				item.VariantData.ProductVariantID = v.ID
				item.VariantData.SKU = v.SKU
				item.VariantData.AvailableQty = v.AvailableQty
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("product %s has no variant %s", p.ID, args[2])
		}
	}

	store, err := openCart()
	if err != nil {
		return err
	}
	if err := store.Add(item); err != nil {
		return err
	}
	fmt.Printf("added %s x%d, cart total %s\n", p.Name, qty, helper.FormatAmount(store.Total(), "VND"))
	return nil
}

func cartQtyCmd(args []string) error {
	if len(args) < 2 {
		return errors.New("usage: cart-qty <index> <qty>")
	}
	index, err1 := strconv.Atoi(args[0])
	qty, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil {
		return errors.New("index and quantity must be numbers")
	}

	store, err := openCart()
	if err != nil {
		return err
	}
	if err := store.SetQuantity(index, qty); err != nil {
		return err
	}
	return cartCmd()
}

func cartRemoveCmd(args []string) error {
	if len(args) < 1 {
		return errors.New("usage: cart-rm <index>")
	}
	index, err := strconv.Atoi(args[0])
	if err != nil {
		return errors.New("index must be a number")
	}

	store, err := openCart()
	if err != nil {
		return err
	}
	if err := store.Remove(index); err != nil {
		return err
	}
	return cartCmd()
}

// === checkout ===

func checkoutCmd(ctx context.Context) error {
	if err := requireAuth(); err != nil {
		return err
	}
	store, err := openCart()
	if err != nil {
		return err
	}
	if store.Len() == 0 {
		fmt.Println("cart is empty, nothing to order")
		return nil
	}

	flow := checkout.FromCart(session, tx, store)
	return runCheckout(ctx, flow)
}

func buyNowCmd(ctx context.Context, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}
	if len(args) < 2 {
		return errors.New("usage: buy-now <productId> <qty> [sku]")
	}
	qty, err := strconv.Atoi(args[1])
	if err != nil {
		return errors.New("invalid quantity")
	}

	p, err := products.GetProductByID(ctx, args[0])
	if err != nil {
		return err
	}

	var variant *model.ProductVariant
	if len(args) > 2 {
		variants, err := products.GetVariantsByProduct(ctx, p.ID)
		if err != nil {
			return err
		}
		for i := range variants {
			if variants[i].SKU == args[2] {
				variant = &variants[i]
				break
			}
		}
		if variant == nil {
			return fmt.Errorf("product %s has no variant %s", p.ID, args[2])
		}
	}

	flow, err := checkout.BuyNow(session, tx, &p, variant, qty)
	if err != nil {
		return err
	}
	return runCheckout(ctx, flow)
}

func runCheckout(ctx context.Context, flow *checkout.Flow) error {
	for i, item := range flow.Items() {
		fmt.Printf("[%d] %-32s x%-3d %s\n", i, item.Name, item.Quantity,
			helper.FormatAmount(item.Price*int64(item.Quantity), "VND"))
	}
	fmt.Println("total:", helper.FormatAmount(flow.TotalAmount(), "VND"))

	if confirm("load saved billing address?") {
		if err := flow.LoadSavedAddress(ctx, users); err != nil {
			// keep the form usable, the user can still type everything
			fmt.Println("could not load saved address:", err)
		}
	}
	if flow.Info.FullName == "" {
		flow.Info.FullName = readLine("full name")
	}
	if flow.Info.Phone == "" {
		flow.Info.Phone = readLine("phone")
	}
	if flow.Info.Address == "" {
		flow.Info.Address = readLine("address")
	}

	if !confirm("place order for " + helper.FormatAmount(flow.TotalAmount(), "VND") + "?") {
		fmt.Println("order not placed")
		return nil
	}

	order, err := flow.Submit(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("order %s created, %s\n", order.ID, helper.FormatAmount(order.TotalAmount, order.Currency))
	fmt.Printf("continue to payment: /payment/redirect?orderId=%s\n", order.ID)
	return nil
}

// === buyer orders ===

func ordersCmd(ctx context.Context, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	h := orders.NewHistory(tx, session.UserID)
	if err := h.Load(ctx); err != nil {
		return err
	}

	status := orders.AllStatuses
	page := 1
	if len(args) > 0 {
		status = strings.ToUpper(args[0])
	}
	if len(args) > 1 {
		if n, err := strconv.Atoi(args[1]); err == nil {
			page = n
		}
	}

	counts := h.Counts()
	fmt.Printf("ALL=%d", counts[orders.AllStatuses])
	for _, s := range []string{model.OrderCreated, model.OrderReadyPay, model.OrderPaying, model.OrderPaid, model.OrderDelivered, model.OrderCompleted} {
		if counts[s] > 0 {
			fmt.Printf(" %s=%d", s, counts[s])
		}
	}
	fmt.Println()

	list, totalPages := h.Page(status, page)
	for _, o := range list {
		printOrderLine(o)
		if url, ok := orders.RetryPaymentURL(o); ok {
			fmt.Println("      payment stuck, retry:", url)
		}
	}
	fmt.Printf("page %d/%d\n", page, totalPages)
	return nil
}

func orderCmd(ctx context.Context, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}
	if len(args) < 1 {
		return errors.New("usage: order <id>")
	}

	o, err := tx.GetOrderByID(ctx, args[0], session.UserID)
	if err != nil {
		return err
	}

	printOrderLine(o)
	for _, item := range o.Items {
		fmt.Printf("      %-32s x%-3d %s\n", item.ProductName, item.Quantity, helper.FormatAmount(item.Subtotal, o.Currency))
	}
	for _, p := range o.Proofs {
		fmt.Printf("      proof: %s %s %s\n", p.Type, p.URL, p.Note)
	}
	if orders.CanCancel(o) {
		fmt.Println("      this order can still be cancelled")
	}
	return nil
}

func cancelCmd(ctx context.Context, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}
	if len(args) < 1 {
		return errors.New("usage: cancel <orderId>")
	}

	h := orders.NewHistory(tx, session.UserID)
	if err := h.Load(ctx); err != nil {
		return err
	}

	if !confirm("cancel order " + args[0] + "? this cannot be undone") {
		fmt.Println("order kept")
		return nil
	}
	if err := h.Cancel(ctx, args[0]); err != nil {
		return err
	}
	fmt.Println("order cancelled")
	return nil
}

// === seller orders ===

func sellerOrdersCmd(ctx context.Context, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	q := orders.NewQueue(tx, session.UserID)
	if err := q.Load(ctx); err != nil {
		return err
	}

	status := orders.AllStatuses
	page := 1
	if len(args) > 0 {
		status = strings.ToUpper(args[0])
	}
	if len(args) > 1 {
		if n, err := strconv.Atoi(args[1]); err == nil {
			page = n
		}
	}

	list, totalPages := q.Page(status, page)
	for _, o := range list {
		printOrderLine(o)
		if orders.CanUploadProof(o) {
			fmt.Println("      waiting for delivery proof")
		}
	}
	fmt.Printf("page %d/%d\n", page, totalPages)
	return nil
}

func uploadProofCmd(ctx context.Context, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}
	if len(args) < 3 {
		return errors.New("usage: upload-proof <orderId> <type> <file> [note]")
	}

	file, err := os.Open(args[2])
	if err != nil {
		return err
	}
	defer file.Close()

	q := orders.NewQueue(tx, session.UserID)
	if err := q.Load(ctx); err != nil {
		return err
	}

	proof := model.ProofData{Type: strings.ToUpper(args[1])}
	if len(args) > 3 {
		proof.Note = strings.Join(args[3:], " ")
	}

	o, err := q.UploadProof(ctx, args[0], proof, file.Name(), file)
	if err != nil {
		return err
	}
	fmt.Printf("proof uploaded, order %s is now %s\n", o.ID, o.Status)
	return nil
}

// === refunds ===

func refundsCmd(ctx context.Context) error {
	if err := requireAuth(); err != nil {
		return err
	}

	m := refund.NewManager(tx, session.UserID)
	if err := m.Load(ctx); err != nil {
		return err
	}

	for _, r := range m.Refunds() {
		fmt.Printf("%-24s order=%-24s %-10s %s\n", r.ID, r.OrderID, r.Status, r.Reason)
	}
	if eligible := m.EligibleOrders(); len(eligible) > 0 {
		fmt.Println("orders you can request a refund for:")
		for _, o := range eligible {
			printOrderLine(o)
		}
	}
	return nil
}

func refundCreateCmd(ctx context.Context, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}
	if len(args) < 2 {
		return errors.New("usage: refund-create <orderId> <reason...>")
	}

	m := refund.NewManager(tx, session.UserID)
	if err := m.Load(ctx); err != nil {
		return err
	}

	r, err := m.Create(ctx, args[0], strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	fmt.Printf("refund %s created with status %s\n", r.ID, r.Status)
	return nil
}

func refundReviewCmd(ctx context.Context) error {
	if err := requireAuth(); err != nil {
		return err
	}

	rev := refund.NewReview(tx, session.UserID)
	if err := rev.Load(ctx); err != nil {
		return err
	}

	for _, r := range rev.Refunds() {
		actions := refund.Actions(r.Status)
		fmt.Printf("%-24s order=%-24s %-10s %-30s %v\n", r.ID, r.OrderID, r.Status, r.Reason, actions)
	}
	return nil
}

func refundActionCmd(ctx context.Context, cmd string, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}
	if len(args) < 1 {
		return fmt.Errorf("usage: %s <refundId>", cmd)
	}

	rev := refund.NewReview(tx, session.UserID)
	if err := rev.Load(ctx); err != nil {
		return err
	}

	var r model.Refund
	var err error
	switch cmd {
	case "refund-approve":
		r, err = rev.Approve(ctx, args[0])
	case "refund-reject":
		if len(args) < 2 {
			return errors.New("usage: refund-reject <refundId> <reason...>")
		}
		r, err = rev.Reject(ctx, args[0], strings.Join(args[1:], " "))
	case "refund-process":
		r, err = rev.MarkProcessing(ctx, args[0])
	}
	if err != nil {
		return err
	}
	fmt.Printf("refund %s is now %s\n", r.ID, r.Status)
	return nil
}

// === disputes ===

func disputesCmd(ctx context.Context) error {
	if err := requireAuth(); err != nil {
		return err
	}

	d := dispute.NewDesk(tx, session.UserID)
	if err := d.Load(ctx); err != nil {
		return err
	}
	for _, item := range d.Disputes() {
		fmt.Printf("%-24s order=%-24s %-14s %-10s %s\n", item.ID, item.OrderID, item.IssueType, item.Status, item.Description)
	}
	return nil
}

func disputeCreateCmd(ctx context.Context, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}
	if len(args) < 3 {
		return fmt.Errorf("usage: dispute-create <orderId> <issueType> <description...> (issue types: %s)",
			strings.Join(dispute.IssueTypes(), ", "))
	}

	d := dispute.NewDesk(tx, session.UserID)
	created, err := d.Create(ctx, args[0], strings.ToUpper(args[1]), strings.Join(args[2:], " "))
	if err != nil {
		return err
	}
	fmt.Printf("dispute %s opened with status %s\n", created.ID, created.Status)
	return nil
}

func disputeAdminCmd(ctx context.Context) error {
	if err := requireAuth(); err != nil {
		return err
	}

	a := dispute.NewAdmin(tx)
	if err := a.Load(ctx); err != nil {
		return err
	}
	for _, item := range a.Disputes() {
		fmt.Printf("%-24s order=%-24s opened-by=%-24s %-14s %s\n", item.ID, item.OrderID, item.OpenedBy, item.IssueType, item.Status)
	}
	return nil
}

func disputeResolveCmd(ctx context.Context, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}
	if len(args) < 2 {
		return errors.New("usage: dispute-resolve <disputeId> <status> [autoRefund]")
	}

	autoRefund := len(args) > 2 && strings.EqualFold(args[2], "true")

	a := dispute.NewAdmin(tx)
	if err := a.Load(ctx); err != nil {
		return err
	}
	d, err := a.Resolve(ctx, args[0], strings.ToUpper(args[1]), autoRefund)
	if err != nil {
		return err
	}
	fmt.Printf("dispute %s is now %s\n", d.ID, d.Status)
	return nil
}

// === shared output ===

func printOrderLine(o model.Order) {
	fmt.Printf("%-24s %-10s pay=%-10s %s\n", o.ID, o.Status, o.PaymentStatus,
		helper.FormatAmount(o.TotalAmount, o.Currency))
}

// listOpts reads an optional page number from the remaining args.
func listOpts(args []string) api.ListOptions {
	opts := api.ListOptions{Page: 1, Limit: 20}
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil && n > 0 {
			opts.Page = n
		}
	}
	return opts
}
