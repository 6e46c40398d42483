package routes

import (
	"net/http"

	"lrlcargo/handlers"
)

// CORS middleware
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*") // Replace * with your domain in production
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		// Handle preflight request
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func SetupRoutes(
	userHandler *handlers.UserHandler,
	cargoHandler *handlers.CargoHandler,
	partyHandler *handlers.PartyHandler,
	branchHandler *handlers.BranchHandler,
	invoiceHandler *handlers.InvoiceHandler,
	pdfHandler *handlers.PDFHandler,
) {
	// User routes
	http.Handle("/signup", withCORS(http.HandlerFunc(handlers.RecoverWrapper(userHandler.Signup))))
	http.Handle("/login", withCORS(http.HandlerFunc(handlers.RecoverWrapper(userHandler.Login))))

	// Invoice routes
	http.Handle("/invoice", withCORS(http.HandlerFunc(handlers.RecoverWrapper(invoiceHandler.GetInvoice))))
	http.Handle("/invoice/pdf", withCORS(http.HandlerFunc(handlers.RecoverWrapper(pdfHandler.InvoicePDF))))

	// Cargo routes
	http.Handle("/cargo", withCORS(http.HandlerFunc(handlers.RecoverWrapper(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			cargoHandler.CreateCargo(w, r)
		case http.MethodGet:
			cargoHandler.GetAllCargo(w, r)
		case http.MethodDelete:
			cargoHandler.DeleteCargo(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))))

	http.Handle("/cargo/next-no", withCORS(http.HandlerFunc(handlers.RecoverWrapper(cargoHandler.NextBookingNo))))

	// Get cargo by ID
	http.Handle("/cargo/", withCORS(http.HandlerFunc(handlers.RecoverWrapper(func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Path[len("/cargo/"):]
		if id != "" {
			cargoHandler.GetCargoByID(w, r, id)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))))

	// Party routes
	http.Handle("/party", withCORS(http.HandlerFunc(handlers.RecoverWrapper(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			partyHandler.SaveParty(w, r)
		case http.MethodGet:
			partyHandler.SearchParties(w, r)
		case http.MethodDelete:
			partyHandler.DeleteParty(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))))

	// Get party by ID
	http.Handle("/party/", withCORS(http.HandlerFunc(handlers.RecoverWrapper(func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Path[len("/party/"):]
		if id != "" {
			partyHandler.GetPartyByID(w, r, id)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))))

	// Branch routes
	http.Handle("/branch", withCORS(http.HandlerFunc(handlers.RecoverWrapper(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			branchHandler.SaveBranch(w, r)
		case http.MethodGet:
			branchHandler.ListBranches(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))))

	// Get branch by ID
	http.Handle("/branch/", withCORS(http.HandlerFunc(handlers.RecoverWrapper(func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Path[len("/branch/"):]
		if id != "" {
			branchHandler.GetBranchByID(w, r, id)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))))
}
