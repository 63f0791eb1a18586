package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/elastic/go-elasticsearch/v8/esapi"

	"scatch_back_end/internal/database"
	"scatch_back_end/internal/models"
)

const productIndex = "products"

// indexations en arrière-plan encore en vol
var indexing sync.WaitGroup

// ErrUnavailable : pas de client Elasticsearch configuré, la recherche est
// désactivée pour ce déploiement.
var ErrUnavailable = errors.New("recherche non disponible")

//
// --- INDEXATION DANS ELASTICSEARCH ---
//

// IndexProductAsync indexe sans bloquer la requête, mais la goroutine
// reste traçable : Wait permet aux tests et à l'arrêt du serveur
// d'attendre les indexations en vol.
func IndexProductAsync(p models.Product) {
	indexing.Add(1)
	go func() {
		defer indexing.Done()
		IndexProduct(p)
	}()
}

// Wait bloque jusqu'à la fin des indexations lancées par
// IndexProductAsync.
func Wait() {
	indexing.Wait()
}

// IndexProduct indexe un produit MongoDB dans Elasticsearch. Best-effort :
// le catalogue reste la source de vérité, on ne bloque jamais la création.
func IndexProduct(p models.Product) {
	if database.Elastic == nil {
		return
	}

	doc := map[string]interface{}{
		"name":     p.Name,
		"price":    p.Price,
		"discount": p.Discount,
	}
	data, _ := json.Marshal(doc)

	req := esapi.IndexRequest{
		Index:      productIndex,
		DocumentID: p.ID.Hex(),
		Body:       bytes.NewReader(data),
		Refresh:    "true",
	}

	res, err := req.Do(context.Background(), database.Elastic)
	if err != nil {
		log.Println("❌ Erreur envoi Elastic:", err)
		return
	}
	defer res.Body.Close()

	if res.IsError() {
		log.Printf("⚠️ Elastic a renvoyé une erreur pour %s: %s", p.Name, res.String())
	} else {
		log.Printf("✅ Produit indexé dans Elasticsearch: %s", p.Name)
	}
}

//
// --- RECHERCHE DANS ELASTICSEARCH ---
//

// Products cherche des produits par nom et rend leurs ids (hex), à
// résoudre ensuite dans le catalogue.
func Products(ctx context.Context, query string) ([]string, error) {
	if database.Elastic == nil {
		return nil, ErrUnavailable
	}

	var buf bytes.Buffer
	q := map[string]interface{}{
		"query": map[string]interface{}{
			"match": map[string]interface{}{
				"name": query,
			},
		},
	}
	if err := json.NewEncoder(&buf).Encode(q); err != nil {
		return nil, fmt.Errorf("erreur encodage requête: %w", err)
	}

	req := esapi.SearchRequest{
		Index: []string{productIndex},
		Body:  &buf,
	}
	res, err := req.Do(ctx, database.Elastic)
	if err != nil {
		return nil, fmt.Errorf("erreur requête Elastic: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("erreur décodage JSON: %w", err)
	}

	ids := make([]string, 0, len(r.Hits.Hits))
	for _, h := range r.Hits.Hits {
		ids = append(ids, h.ID)
	}
	return ids, nil
}
