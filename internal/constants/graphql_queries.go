package constants

const listingFieldsFragment = `
fragment ListingFields on Listing {
  id
  listingType: __typename
  description
  title
  badge
  propertyType {
    id
    display
  }
  address {
    display {
      shortAddress
      fullAddress
      geocode {
        latitude
        longitude
      }
    }
    suburb
    state
    postcode
  }
  price {
    display
  }
  generalFeatures {
    bedrooms {
      value
    }
    bathrooms {
      value
    }
    parkingSpaces {
      value
    }
  }
  propertySizes {
    land {
      displayValue
      sizeUnit {
        displayValue
      }
    }
  }
  listers {
    id
    name
    phoneNumber {
      display
    }
  }
  listingCompany {
    id
    name
  }
  media {
    mainImage {
      templatedUrl
    }
  }
  _links {
    canonical {
      href
    }
  }
}
`

const searchResultsSelection = `
    results {
      exact {
        items {
          listing {
            ...ListingFields
          }
        }
      }
      surrounding {
        items {
          listing {
            ...ListingFields
          }
        }
      }
      pagination {
        moreResultsAvailable
        nextPageUrl
      }
      totalResultsCount
    }
`

const searchBuyQuery = `query searchByQuery($query: String!, $testListings: Boolean!, $nullifyOptionals: Boolean!) {
  buySearch(query: $query, testListings: $testListings, nullifyOptionals: $nullifyOptionals) {` +
	searchResultsSelection + `  }
}
` + listingFieldsFragment

const searchRentQuery = `query searchByQuery($query: String!, $testListings: Boolean!, $nullifyOptionals: Boolean!) {
  rentSearch(query: $query, testListings: $testListings, nullifyOptionals: $nullifyOptionals) {` +
	searchResultsSelection + `  }
}
` + listingFieldsFragment

const searchSoldQuery = `query searchByQuery($query: String!, $testListings: Boolean!, $nullifyOptionals: Boolean!) {
  soldSearch(query: $query, testListings: $testListings, nullifyOptionals: $nullifyOptionals) {` +
	searchResultsSelection + `  }
}
` + listingFieldsFragment
